package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerationRepo handles database operations for generations and their results
type GenerationRepo struct {
	db *DB
}

var _ GenerationRepository = (*GenerationRepo)(nil)

// NewGenerationRepository creates a new generation repository
func NewGenerationRepository(db *DB) *GenerationRepo {
	return &GenerationRepo{db: db}
}

// CreateWithResults persists a generation and its results in a single
// transaction. Nothing is written on failure.
func (r *GenerationRepo) CreateWithResults(gen *Generation, results []GenerationResult) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if gen.ID == "" {
		gen.ID = uuid.NewString()
	}
	gen.CreatedAt = time.Now().UTC()

	_, err = tx.Exec(`
		INSERT INTO generations (id, client_id, date, prompt_version, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, gen.ID, gen.ClientID, gen.Date, gen.PromptVersion, gen.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create generation: %w", err)
	}

	for i := range results {
		res := &results[i]
		if res.ID == "" {
			res.ID = uuid.NewString()
		}
		res.GenerationID = gen.ID
		res.CreatedAt = gen.CreatedAt

		_, err = tx.Exec(`
			INSERT INTO generation_results (
				id, generation_id, channel_id, style, language, text, model, latency_ms, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, res.ID, res.GenerationID, res.ChannelID, res.Style, res.Language,
			res.Text, res.Model, res.LatencyMs, res.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create generation result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit generation: %w", err)
	}

	return nil
}

func (r *GenerationRepo) GetByID(clientID, generationID string) (*Generation, error) {
	var gen Generation
	err := r.db.QueryRow(`
		SELECT id, client_id, date, prompt_version, created_at
		FROM generations
		WHERE id = ? AND client_id = ?
	`, generationID, clientID).Scan(
		&gen.ID, &gen.ClientID, &gen.Date, &gen.PromptVersion, &gen.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}

	return &gen, nil
}

func (r *GenerationRepo) ListResults(generationID string) ([]GenerationResult, error) {
	rows, err := r.db.Query(`
		SELECT id, generation_id, channel_id, style, language, text, model, latency_ms, created_at
		FROM generation_results
		WHERE generation_id = ?
		ORDER BY created_at, channel_id
	`, generationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation results: %w", err)
	}
	defer rows.Close()

	var results []GenerationResult
	for rows.Next() {
		var res GenerationResult
		err := rows.Scan(
			&res.ID, &res.GenerationID, &res.ChannelID, &res.Style, &res.Language,
			&res.Text, &res.Model, &res.LatencyMs, &res.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	return results, nil
}

func (r *GenerationRepo) ListByDate(clientID, date string) ([]Generation, error) {
	rows, err := r.db.Query(`
		SELECT id, client_id, date, prompt_version, created_at
		FROM generations
		WHERE client_id = ? AND date = ?
		ORDER BY created_at
	`, clientID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var gen Generation
		err := rows.Scan(&gen.ID, &gen.ClientID, &gen.Date, &gen.PromptVersion, &gen.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation row: %w", err)
		}
		gens = append(gens, gen)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation rows: %w", err)
	}

	return gens, nil
}

func (r *GenerationRepo) CountByDate(clientID, date string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM generations WHERE client_id = ? AND date = ?
	`, clientID, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return count, nil
}

func (r *GenerationRepo) DeleteDay(clientID, date string) error {
	_, err := r.db.Exec(`
		DELETE FROM generations
		WHERE client_id = ? AND date = ?
	`, clientID, date)

	if err != nil {
		return fmt.Errorf("failed to delete day generations: %w", err)
	}

	return nil
}

func (r *GenerationRepo) GetOwnedResult(clientID, resultID string) (*GenerationResult, *Generation, error) {
	var res GenerationResult
	var gen Generation
	err := r.db.QueryRow(`
		SELECT r.id, r.generation_id, r.channel_id, r.style, r.language, r.text,
		       r.model, r.latency_ms, r.created_at,
		       g.id, g.client_id, g.date, g.prompt_version, g.created_at
		FROM generation_results r
		JOIN generations g ON g.id = r.generation_id
		WHERE r.id = ? AND g.client_id = ?
	`, resultID, clientID).Scan(
		&res.ID, &res.GenerationID, &res.ChannelID, &res.Style, &res.Language,
		&res.Text, &res.Model, &res.LatencyMs, &res.CreatedAt,
		&gen.ID, &gen.ClientID, &gen.Date, &gen.PromptVersion, &gen.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get generation result: %w", err)
	}

	return &res, &gen, nil
}
