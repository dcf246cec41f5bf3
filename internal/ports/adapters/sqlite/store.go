// Package sqlite persists extracted templates locally. It implements the
// persistence collaborator the pipeline hands its Template to; the pipeline
// core itself never depends on it.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/forPelevin/reelmap/internal/ports"
	"github.com/forPelevin/reelmap/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	source_ref TEXT NOT NULL,
	duration   REAL NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_templates_created_at ON templates(created_at);
`

type Store struct {
	conn *sql.DB
}

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Save(ctx context.Context, t types.Template) (string, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("marshal template: %w", err)
	}

	id := uuid.NewString()
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO templates (id, name, source_ref, duration, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, t.Name, t.SourceRef, t.Duration, string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert template: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (types.Template, error) {
	var payload string
	err := s.conn.QueryRowContext(ctx,
		`SELECT payload FROM templates WHERE id = ?`, id,
	).Scan(&payload)
	if err != nil {
		return types.Template{}, fmt.Errorf("get template %s: %w", id, err)
	}

	var t types.Template
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return types.Template{}, fmt.Errorf("unmarshal template %s: %w", id, err)
	}
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]ports.TemplateInfo, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, name, source_ref, duration, created_at
		 FROM templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []ports.TemplateInfo
	for rows.Next() {
		var (
			info      ports.TemplateInfo
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.SourceRef, &info.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, info)
	}
	return out, rows.Err()
}
