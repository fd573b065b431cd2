package repository

import (
	"strings"
	"testing"
)

func tableColumnNames(t *testing.T, name string) map[string]bool {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name != name {
			continue
		}
		cols := make(map[string]bool, len(tbl.Columns))
		for _, c := range tbl.Columns {
			cols[c.Name] = true
		}
		return cols
	}
	t.Fatalf("table %q not defined", name)
	return nil
}

// The migration tables and the raw SQL column lists must agree; a column
// referenced by a query but missing from the migration would only fail at
// runtime against a fresh database.
func TestMigrationCoversQueriedColumns(t *testing.T) {
	checks := []struct {
		table   string
		columns string
	}{
		{"documents", documentColumns},
		{"parse_jobs", jobColumns},
	}
	for _, c := range checks {
		defined := tableColumnNames(t, c.table)
		for _, col := range strings.Split(c.columns, ",") {
			col = strings.TrimSpace(col)
			if !defined[col] {
				t.Errorf("%s: column %q queried but not defined in migration", c.table, col)
			}
		}
	}
}

func TestMigrationTableWiring(t *testing.T) {
	if len(parseJobsTable.ForeignKeys) != 1 {
		t.Fatalf("parse_jobs foreign keys: got %d, want 1", len(parseJobsTable.ForeignKeys))
	}
	fk := parseJobsTable.ForeignKeys[0]
	if fk.RefTable != documentsTable {
		t.Error("parse_jobs.document_id must reference documents")
	}
	if fk.Columns[0].Name != "document_id" || fk.RefColumns[0].Name != "id" {
		t.Errorf("foreign key columns: got %s -> %s, want document_id -> id", fk.Columns[0].Name, fk.RefColumns[0].Name)
	}

	var hashUnique bool
	for _, c := range documentsTable.Columns {
		if c.Name == "content_hash" {
			hashUnique = c.Unique
		}
	}
	if !hashUnique {
		t.Error("documents.content_hash must be unique for dedup by hash")
	}

	if documentsTable.PrimaryKey[0].Name != "id" || parseJobsTable.PrimaryKey[0].Name != "id" {
		t.Error("both tables key on id")
	}
}
