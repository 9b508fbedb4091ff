package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"bingo-cli/internal/model"
)

const dbFileName = "boards.sqlite"

// Cache is a best-effort local record of recently viewed boards, so
// `boards recent` works offline and the TUI has something to show when a
// listing reset fails. It is not a source of truth; rows are whatever the
// server last told us.
type Cache struct {
	Dir string
}

func DefaultDir() (string, error) {
	if v := os.Getenv("BINGO_CACHE_DIR"); v != "" {
		return v, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "bingo"), nil
}

func (c Cache) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(c.Dir, dbFileName))
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS recent_boards (
  id TEXT PRIMARY KEY,
  json TEXT NOT NULL,
  viewed_at_unixms INTEGER NOT NULL
);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Put records a board view. Existing rows are replaced so the board keeps its
// freshest snapshot and timestamp.
func (c Cache) Put(ctx context.Context, b model.Board) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO recent_boards(id, json, viewed_at_unixms) VALUES(?, ?, ?)`,
		b.ID, string(raw), time.Now().UTC().UnixMilli())
	return err
}

// Recent returns up to limit boards, most recently viewed first. Rows that no
// longer decode (schema drift) are skipped rather than failing the whole read.
func (c Cache) Recent(ctx context.Context, limit int) ([]model.Board, error) {
	if limit <= 0 {
		limit = 20
	}
	db, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT json FROM recent_boards ORDER BY viewed_at_unixms DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Board
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var b model.Board
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
