package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProjectContext holds the combined objects handed to the chat assistant as
// grounding for a project.
type ProjectContext map[string]interface{}

// queryJSON runs a SQL that returns a single json value and unmarshals it.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, sql string, args ...interface{}) (interface{}, error) {
	var raw []byte
	err := pool.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AggregateProjectContext collects the project row, its uploaded documents
// (metadata only, the full text is too large for a prompt), the current
// proposal and a sample of active resources. It is intentionally best-effort:
// a missing piece is skipped and the function returns whatever it could
// fetch.
func AggregateProjectContext(ctx context.Context, pool *pgxpool.Pool, projectID uuid.UUID) (ProjectContext, error) {
	res := ProjectContext{}

	if v, err := queryJSON(ctx, pool, `SELECT to_jsonb(p) FROM projects p WHERE p.id=$1 LIMIT 1`, projectID); err == nil {
		res["project"] = v
	}
	if v, err := queryJSON(ctx, pool, `SELECT coalesce(json_agg(json_build_object(
			'type', d.type, 'file_name', d.file_name, 'extracted_metadata', d.extracted_metadata)), '[]')
		FROM documents d WHERE d.project_id=$1`, projectID); err == nil {
		res["documents"] = v
	}
	if v, err := queryJSON(ctx, pool, `SELECT to_jsonb(pr) FROM proposals pr WHERE pr.project_id=$1 LIMIT 1`, projectID); err == nil {
		res["proposal"] = v
	}
	if v, err := queryJSON(ctx, pool, `SELECT coalesce(json_agg(json_build_object(
			'category', r.category, 'name', r.name, 'description', r.description, 'url', r.url)), '[]')
		FROM (SELECT * FROM resources WHERE is_active ORDER BY category, name LIMIT 30) r`); err == nil {
		res["resources"] = v
	}

	return res, nil
}
