package mcp

import (
	"context"
	"fmt"

	"github.com/2beens/memberhub/internal/db"
)

type SchemaRepo interface {
	ActivityColumns(ctx context.Context) ([]SchemaColumn, error)
}

// SchemaColumn is one column of an activity table. References is set for
// foreign key columns, as "table.column".
type SchemaColumn struct {
	Table      string
	Name       string
	DataType   string
	Nullable   bool
	Default    *string
	References *string
}

var activityTables = []string{"members", "checkins", "workout_sessions", "workout_exercises"}

type querierSchemaRepo struct {
	db db.Querier
}

func NewSchemaRepo(q db.Querier) SchemaRepo {
	return &querierSchemaRepo{db: q}
}

func (r *querierSchemaRepo) ActivityColumns(ctx context.Context) ([]SchemaColumn, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.table_name, c.column_name, c.data_type, c.is_nullable = 'YES', c.column_default, fk.ref
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.table_name, kcu.column_name, ccu.table_name || '.' || ccu.column_name AS ref
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
			JOIN information_schema.constraint_column_usage ccu
				ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = 'public'
		) fk ON fk.table_name = c.table_name AND fk.column_name = c.column_name
		WHERE c.table_schema = 'public'
		  AND c.table_name = ANY($1)
		ORDER BY c.table_name, c.ordinal_position`, activityTables)
	if err != nil {
		return nil, fmt.Errorf("query activity columns: %w", err)
	}
	defer rows.Close()

	var cols []SchemaColumn
	for rows.Next() {
		var c SchemaColumn
		if err := rows.Scan(&c.Table, &c.Name, &c.DataType, &c.Nullable, &c.Default, &c.References); err != nil {
			return nil, fmt.Errorf("scan activity column: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}
