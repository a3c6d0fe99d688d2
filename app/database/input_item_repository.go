package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InputItemRepo handles database operations for input items
type InputItemRepo struct {
	db *DB
}

var _ InputItemRepository = (*InputItemRepo)(nil)

// NewInputItemRepository creates a new input item repository
func NewInputItemRepository(db *DB) *InputItemRepo {
	return &InputItemRepo{db: db}
}

const inputItemColumns = `id, client_id, date, type, content, extracted_text, extract_error,
	       cleared, importance, include_in_generation, created_at, updated_at`

func (r *InputItemRepo) Create(item *InputItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO input_items (
			id, client_id, date, type, content, extracted_text, extract_error,
			cleared, importance, include_in_generation, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.ClientID, item.Date, item.Type, item.Content,
		item.ExtractedText, item.ExtractError, item.Cleared,
		item.Importance, item.IncludeInGeneration, item.CreatedAt, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create input item: %w", err)
	}

	return nil
}

func (r *InputItemRepo) GetByID(clientID, itemID string) (*InputItem, error) {
	row := r.db.QueryRow(`
		SELECT `+inputItemColumns+`
		FROM input_items
		WHERE id = ? AND client_id = ?
	`, itemID, clientID)

	item, err := scanInputItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get input item: %w", err)
	}

	return item, nil
}

func (r *InputItemRepo) ListByDate(clientID, date string, includeCleared bool) ([]InputItem, error) {
	query := `
		SELECT ` + inputItemColumns + `
		FROM input_items
		WHERE client_id = ? AND date = ?`
	if !includeCleared {
		query += ` AND cleared = 0`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(query, clientID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list input items: %w", err)
	}
	defer rows.Close()

	var items []InputItem
	for rows.Next() {
		item, err := scanInputItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan input item row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating input item rows: %w", err)
	}

	return items, nil
}

func (r *InputItemRepo) ListEdits(itemID string) ([]InputItemEdit, error) {
	rows, err := r.db.Query(`
		SELECT id, item_id, old_content, edited_at
		FROM input_item_edits
		WHERE item_id = ?
		ORDER BY edited_at
	`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item edits: %w", err)
	}
	defer rows.Close()

	var edits []InputItemEdit
	for rows.Next() {
		var e InputItemEdit
		if err := rows.Scan(&e.ID, &e.ItemID, &e.OldContent, &e.EditedAt); err != nil {
			return nil, fmt.Errorf("failed to scan edit row: %w", err)
		}
		edits = append(edits, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edit rows: %w", err)
	}

	return edits, nil
}

func (r *InputItemRepo) UpdateContent(itemID, oldContent, newContent string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	_, err = tx.Exec(`
		INSERT INTO input_item_edits (id, item_id, old_content, edited_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), itemID, oldContent, now)
	if err != nil {
		return fmt.Errorf("failed to record item edit: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE input_items
		SET content = ?, updated_at = ?
		WHERE id = ?
	`, newContent, now, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit item update: %w", err)
	}

	return nil
}

func (r *InputItemRepo) UpdateFlags(itemID string, importance *int, includeInGeneration *bool) error {
	if importance == nil && includeInGeneration == nil {
		return nil
	}

	query := `UPDATE input_items SET updated_at = ?`
	args := []interface{}{time.Now().UTC()}
	if importance != nil {
		query += `, importance = ?`
		args = append(args, *importance)
	}
	if includeInGeneration != nil {
		query += `, include_in_generation = ?`
		args = append(args, *includeInGeneration)
	}
	query += ` WHERE id = ?`
	args = append(args, itemID)

	if _, err := r.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update item flags: %w", err)
	}

	return nil
}

func (r *InputItemRepo) Clear(itemID string) error {
	_, err := r.db.Exec(`
		UPDATE input_items
		SET cleared = 1, updated_at = ?
		WHERE id = ?
	`, time.Now().UTC(), itemID)

	if err != nil {
		return fmt.Errorf("failed to clear input item: %w", err)
	}

	return nil
}

func (r *InputItemRepo) ClearDay(clientID, date string) error {
	_, err := r.db.Exec(`
		UPDATE input_items
		SET cleared = 1, updated_at = ?
		WHERE client_id = ? AND date = ? AND cleared = 0
	`, time.Now().UTC(), clientID, date)

	if err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}

	return nil
}

func (r *InputItemRepo) DeleteDay(clientID, date string) error {
	_, err := r.db.Exec(`
		DELETE FROM input_items
		WHERE client_id = ? AND date = ?
	`, clientID, date)

	if err != nil {
		return fmt.Errorf("failed to delete day items: %w", err)
	}

	return nil
}

func (r *InputItemRepo) ListDays(clientID string, limit int, cursor, search string) ([]DaySummary, error) {
	query := `
		SELECT i.date, COUNT(i.id) AS input_count,
		       COALESCE(g.generation_count, 0) AS generation_count
		FROM input_items i
		LEFT JOIN (
			SELECT date, COUNT(id) AS generation_count
			FROM generations
			WHERE client_id = ?
			GROUP BY date
		) g ON g.date = i.date
		WHERE i.client_id = ?`
	args := []interface{}{clientID, clientID}

	if search != "" {
		query += ` AND i.content LIKE ?`
		args = append(args, "%"+search+"%")
	}
	if cursor != "" {
		query += ` AND i.date < ?`
		args = append(args, cursor)
	}

	query += `
		GROUP BY i.date
		ORDER BY i.date DESC
		LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	var days []DaySummary
	for rows.Next() {
		var d DaySummary
		if err := rows.Scan(&d.Date, &d.InputCount, &d.GenerationCount); err != nil {
			return nil, fmt.Errorf("failed to scan day row: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day rows: %w", err)
	}

	return days, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInputItem(row rowScanner) (*InputItem, error) {
	var item InputItem
	var extracted, extractErr sql.NullString
	var importance sql.NullInt64

	err := row.Scan(
		&item.ID, &item.ClientID, &item.Date, &item.Type, &item.Content,
		&extracted, &extractErr, &item.Cleared, &importance,
		&item.IncludeInGeneration, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if extracted.Valid {
		item.ExtractedText = &extracted.String
	}
	if extractErr.Valid {
		item.ExtractError = &extractErr.String
	}
	if importance.Valid {
		v := int(importance.Int64)
		item.Importance = &v
	}

	return &item, nil
}
