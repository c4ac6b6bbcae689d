package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Migration is a named schema step run on startup. Steps are idempotent
// (IF NOT EXISTS) so reruns are safe.
type Migration struct {
	Name string
	SQL  string
}

func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	migrations := []Migration{
		{Name: "create_projects", SQL: createProjects},
		{Name: "create_documents", SQL: createDocuments},
		{Name: "create_proposals", SQL: createProposals},
		{Name: "create_proposal_history", SQL: createProposalHistory},
		{Name: "create_resources", SQL: createResources},
		{Name: "create_conversations", SQL: createConversations},
	}

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		log.Debug("migration applied", zap.String("name", m.Name))
	}
	log.Info("migrations completed", zap.Int("count", len(migrations)))
	return nil
}

const createProjects = `
CREATE TABLE IF NOT EXISTS projects (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	project_number TEXT,
	status TEXT NOT NULL DEFAULT 'draft',
	project_title TEXT,
	project_type TEXT,
	start_date TEXT,
	end_date TEXT,
	estimated_participants INTEGER,
	sponsoring_agency TEXT,
	subject TEXT,
	project_description TEXT,
	project_objectives TEXT[],
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const createDocuments = `
CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	file_name TEXT NOT NULL,
	file_url TEXT NOT NULL,
	file_size BIGINT NOT NULL DEFAULT 0,
	extracted_content TEXT,
	extracted_metadata JSONB DEFAULT '{}'::jsonb,
	uploaded_by TEXT,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (project_id, type)
);`

const createProposals = `
CREATE TABLE IF NOT EXISTS proposals (
	id UUID PRIMARY KEY,
	project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	version INTEGER NOT NULL DEFAULT 1,
	status TEXT NOT NULL DEFAULT 'draft',
	content JSONB NOT NULL DEFAULT '{}'::jsonb,
	pdf_url TEXT,
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (project_id)
);`

const createProposalHistory = `
CREATE TABLE IF NOT EXISTS proposal_history (
	id UUID PRIMARY KEY,
	proposal_id UUID NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
	version INTEGER NOT NULL,
	content JSONB NOT NULL DEFAULT '{}'::jsonb,
	change_summary TEXT,
	edited_by TEXT,
	edited_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const createResources = `
CREATE TABLE IF NOT EXISTS resources (
	id UUID PRIMARY KEY,
	category TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	url TEXT,
	meeting_focus TEXT,
	price TEXT,
	accessibility TEXT,
	is_active BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const createConversations = `
CREATE TABLE IF NOT EXISTS conversations (
	id UUID PRIMARY KEY,
	project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	messages JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (project_id)
);`
