package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"

	"github.com/candidatehq/docparse/constants"
	"github.com/candidatehq/docparse/db/ent/schema/utils"
)

type Document struct {
	ent.Schema
}

func (Document) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "documents"},
	}
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.String("source_path").Default(""),
		field.String("filename").NotEmpty(),
		field.String("file_ext").Default(""),
		field.Bytes("content_hash").NotEmpty().
			SchemaType(map[string]string{dialect.Postgres: "bytea"}),
		field.String("text_content").
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.String("doc_type").Optional().Nillable().
			Validate(utils.EnumValidator("doc_type", constants.DocumentTypes...)),
		field.String("status").
			Default(string(constants.StatusUploaded)).
			Validate(utils.EnumValidator("status", constants.Statuses...)),
		field.Time("uploaded_at").Default(time.Now),
	}
}

func (Document) Edges() []ent.Edge {
	return []ent.Edge{
		// ONE document -> MANY parse jobs
		edge.To("jobs", ParseJob.Type),
	}
}

func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("content_hash").Unique(),
		index.Fields("status", "uploaded_at"),
	}
}
