package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublishedPostRepo handles database operations for published posts
type PublishedPostRepo struct {
	db *DB
}

var _ PublishedPostRepository = (*PublishedPostRepo)(nil)

// NewPublishedPostRepository creates a new published post repository
func NewPublishedPostRepository(db *DB) *PublishedPostRepo {
	return &PublishedPostRepo{db: db}
}

func (r *PublishedPostRepo) Create(post *PublishedPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.PublishedAt = time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO published_posts (id, generation_result_id, client_id, slug, published_at)
		VALUES (?, ?, ?, ?, ?)
	`, post.ID, post.GenerationResultID, post.ClientID, post.Slug, post.PublishedAt)

	if err != nil {
		return fmt.Errorf("failed to create published post: %w", err)
	}

	return nil
}

func (r *PublishedPostRepo) GetByResultID(resultID string) (*PublishedPost, error) {
	var post PublishedPost
	err := r.db.QueryRow(`
		SELECT id, generation_result_id, client_id, slug, published_at
		FROM published_posts
		WHERE generation_result_id = ?
	`, resultID).Scan(&post.ID, &post.GenerationResultID, &post.ClientID, &post.Slug, &post.PublishedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get published post: %w", err)
	}

	return &post, nil
}

const publishedRowColumns = `
	p.id, p.generation_result_id, p.client_id, p.slug, p.published_at,
	r.id, r.generation_id, r.channel_id, r.style, r.language, r.text, r.model, r.latency_ms, r.created_at,
	g.id, g.client_id, g.date, g.prompt_version, g.created_at`

const publishedRowJoins = `
	FROM published_posts p
	JOIN generation_results r ON r.id = p.generation_result_id
	JOIN generations g ON g.id = r.generation_id`

func (r *PublishedPostRepo) GetRowBySlug(slug string) (*PublishedPostRow, error) {
	row := r.db.QueryRow(`
		SELECT `+publishedRowColumns+publishedRowJoins+`
		WHERE p.slug = ?
	`, slug)

	prow, err := scanPublishedRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return prow, nil
}

func (r *PublishedPostRepo) Delete(clientID, postID string) error {
	res, err := r.db.Exec(`
		DELETE FROM published_posts
		WHERE id = ? AND client_id = ?
	`, postID, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete published post: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PublishedPostRepo) List(limit int, before *time.Time, channel, language, date string) ([]PublishedPostRow, error) {
	query := `SELECT ` + publishedRowColumns + publishedRowJoins + ` WHERE 1 = 1`
	var args []interface{}

	if before != nil {
		query += ` AND p.published_at < ?`
		args = append(args, before.UTC())
	}
	if channel != "" {
		query += ` AND r.channel_id = ?`
		args = append(args, channel)
	}
	if language != "" {
		query += ` AND r.language = ?`
		args = append(args, language)
	}
	if date != "" {
		query += ` AND g.date = ?`
		args = append(args, date)
	}

	query += ` ORDER BY p.published_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	defer rows.Close()

	var result []PublishedPostRow
	for rows.Next() {
		prow, err := scanPublishedRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan published post row: %w", err)
		}
		result = append(result, *prow)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating published post rows: %w", err)
	}

	return result, nil
}

func (r *PublishedPostRepo) ListByResultIDs(clientID string, resultIDs []string) ([]PublishedPost, error) {
	if len(resultIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(resultIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(resultIDs)+1)
	for _, id := range resultIDs {
		args = append(args, id)
	}
	args = append(args, clientID)

	rows, err := r.db.Query(`
		SELECT id, generation_result_id, client_id, slug, published_at
		FROM published_posts
		WHERE generation_result_id IN (`+placeholders+`) AND client_id = ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts by result ids: %w", err)
	}
	defer rows.Close()

	var posts []PublishedPost
	for rows.Next() {
		var post PublishedPost
		err := rows.Scan(&post.ID, &post.GenerationResultID, &post.ClientID, &post.Slug, &post.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan published post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating published post rows: %w", err)
	}

	return posts, nil
}

func (r *PublishedPostRepo) Calendar(from, to string) ([]CalendarDay, error) {
	rows, err := r.db.Query(`
		SELECT g.date, COUNT(p.id)`+publishedRowJoins+`
		WHERE g.date >= ? AND g.date < ?
		GROUP BY g.date
		ORDER BY g.date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load calendar: %w", err)
	}
	defer rows.Close()

	var days []CalendarDay
	for rows.Next() {
		var d CalendarDay
		if err := rows.Scan(&d.Date, &d.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan calendar row: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar rows: %w", err)
	}

	return days, nil
}

func (r *PublishedPostRepo) Archive() ([]ArchiveMonth, error) {
	rows, err := r.db.Query(`
		SELECT substr(g.date, 1, 7) AS month, COUNT(p.id)` + publishedRowJoins + `
		GROUP BY month
		ORDER BY month DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}
	defer rows.Close()

	var months []ArchiveMonth
	for rows.Next() {
		var m ArchiveMonth
		if err := rows.Scan(&m.Month, &m.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		months = append(months, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating archive rows: %w", err)
	}

	return months, nil
}

func (r *PublishedPostRepo) Stats() (int, int, []string, error) {
	var totalPosts int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM published_posts`).Scan(&totalPosts); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to count published posts: %w", err)
	}

	var totalDays int
	err := r.db.QueryRow(`
		SELECT COUNT(DISTINCT g.date)` + publishedRowJoins + `
	`).Scan(&totalDays)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to count published days: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT DISTINCT r.channel_id
		FROM published_posts p
		JOIN generation_results r ON r.id = p.generation_result_id
		ORDER BY r.channel_id
	`)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to list used channels: %w", err)
	}
	defer rows.Close()

	var channels []string
	for rows.Next() {
		var ch string
		if err := rows.Scan(&ch); err != nil {
			return 0, 0, nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return 0, 0, nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return totalPosts, totalDays, channels, nil
}

func scanPublishedRow(row rowScanner) (*PublishedPostRow, error) {
	var prow PublishedPostRow
	err := row.Scan(
		&prow.Post.ID, &prow.Post.GenerationResultID, &prow.Post.ClientID,
		&prow.Post.Slug, &prow.Post.PublishedAt,
		&prow.Result.ID, &prow.Result.GenerationID, &prow.Result.ChannelID,
		&prow.Result.Style, &prow.Result.Language, &prow.Result.Text,
		&prow.Result.Model, &prow.Result.LatencyMs, &prow.Result.CreatedAt,
		&prow.Generation.ID, &prow.Generation.ClientID, &prow.Generation.Date,
		&prow.Generation.PromptVersion, &prow.Generation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &prow, nil
}
