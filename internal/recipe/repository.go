package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Repository is a database-backed library of extracted recipes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Stored is one persisted extraction with its database identity.
type Stored struct {
	ID        int64
	SourceURL string
	Result    ExtractionResult
	CreatedAt time.Time
}

// Save persists an extraction result and returns its assigned ID.
func (r *Repository) Save(ctx context.Context, sourceURL string, res *ExtractionResult) (int64, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal extraction result: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO recipes (source_url, title, data, created_at) VALUES (?, ?, ?, ?)`,
		sourceURL, res.Recipe.Title, string(data), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted recipe id: %w", err)
	}
	return id, nil
}

// Get retrieves a stored extraction by its ID. A nil result means not found.
func (r *Repository) Get(ctx context.Context, id int64) (*Stored, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source_url, data, created_at FROM recipes WHERE id = ?`, id)

	var s Stored
	var data string
	if err := row.Scan(&s.ID, &s.SourceURL, &data, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &s.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	return &s, nil
}

// List retrieves the most recent extractions, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Stored, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_url, data, created_at FROM recipes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var stored []Stored
	for rows.Next() {
		var s Stored
		var data string
		if err := rows.Scan(&s.ID, &s.SourceURL, &data, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &s.Result); err != nil {
			log.Printf("Warning: failed to unmarshal recipe JSON for ID %d: %v", s.ID, err)
			continue
		}
		stored = append(stored, s)
	}
	return stored, rows.Err()
}

// Count returns the number of stored recipes.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}
