package repository

import (
	"context"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Table definitions mirror the declarative schemas under db/ent/schema;
// change the shape there first and keep this set in lockstep.
var (
	documentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "source_path", Type: field.TypeString, Default: ""},
		{Name: "filename", Type: field.TypeString},
		{Name: "file_ext", Type: field.TypeString, Default: ""},
		{Name: "content_hash", Type: field.TypeBytes, Unique: true},
		{Name: "text_content", Type: field.TypeString, SchemaType: map[string]string{dialect.Postgres: "text"}},
		{Name: "doc_type", Type: field.TypeString, Nullable: true},
		{Name: "status", Type: field.TypeString, Default: "UPLOADED"},
		{Name: "uploaded_at", Type: field.TypeTime},
	}
	documentsTable = &schema.Table{
		Name:       "documents",
		Columns:    documentsColumns,
		PrimaryKey: []*schema.Column{documentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "documents_status_uploaded_at", Columns: []*schema.Column{documentsColumns[7], documentsColumns[8]}},
		},
	}

	parseJobsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "document_id", Type: field.TypeUUID},
		{Name: "status", Type: field.TypeString, Nullable: true},
		{Name: "document_type", Type: field.TypeString, Nullable: true},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "finished_at", Type: field.TypeTime, Nullable: true},
		{Name: "confidence", Type: field.TypeFloat32, Nullable: true},
		{Name: "needs_review", Type: field.TypeBool, Default: false},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
		{Name: "extracted_json", Type: field.TypeJSON, Nullable: true},
		{Name: "validation_json", Type: field.TypeJSON, Nullable: true},
		{Name: "extractor_version", Type: field.TypeString, Nullable: true},
		{Name: "processing_time_ms", Type: field.TypeInt64, Nullable: true},
	}
	parseJobsTable = &schema.Table{
		Name:       "parse_jobs",
		Columns:    parseJobsColumns,
		PrimaryKey: []*schema.Column{parseJobsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "parse_jobs_documents_jobs",
				Columns:    []*schema.Column{parseJobsColumns[1]},
				RefColumns: []*schema.Column{documentsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{Name: "parse_jobs_document_id_started_at", Columns: []*schema.Column{parseJobsColumns[1], parseJobsColumns[4]}},
			{Name: "parse_jobs_needs_review", Columns: []*schema.Column{parseJobsColumns[7]}},
		},
	}

	tables = []*schema.Table{documentsTable, parseJobsTable}
)

func init() {
	parseJobsTable.ForeignKeys[0].RefTable = documentsTable
}

// Migrate creates or updates the tables through the ent schema engine.
// Safe to run on every startup; existing tables are diffed, not recreated.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	drv := entsql.OpenDB(dialect.Postgres, db)
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("init migration: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("repository.migrate.ok")
	return nil
}
