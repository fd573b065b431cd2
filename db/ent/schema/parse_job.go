package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/db/ent/schema/utils"
)

type ParseJob struct{ ent.Schema }

func (ParseJob) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "parse_jobs"},
	}
}

func (ParseJob) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).Default(uuid.New).Immutable(),
		// explicit FK
		field.UUID("document_id", uuid.UUID{}),
		field.String("status").Optional().Nillable().
			Validate(utils.EnumValidator("status", constants.Statuses...)),
		field.String("document_type").Optional().Nillable().
			Validate(utils.EnumValidator("document_type", constants.DocumentTypes...)),
		field.Time("started_at").Default(time.Now),
		field.Time("finished_at").Optional().Nillable(),
		field.Float32("confidence").Optional().Nillable(),
		field.Bool("needs_review").Default(false),
		field.String("error_message").Optional().Nillable(),
		field.JSON("extracted_json", json.RawMessage{}).
			Optional(),
		field.JSON("validation_json", json.RawMessage{}).
			Optional(),
		field.String("extractor_version").Optional().Nillable(),
		field.Int64("processing_time_ms").Optional().Nillable(),
	}
}

func (ParseJob) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("document", Document.Type).
			Ref("jobs").
			Field("document_id").
			Unique().
			Required(),
	}
}

func (ParseJob) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id", "started_at"),
		index.Fields("needs_review"),
	}
}
