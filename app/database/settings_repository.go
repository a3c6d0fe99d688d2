package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// SettingsRepo handles database operations for per-client settings
type SettingsRepo struct {
	db *DB
}

var _ SettingsRepository = (*SettingsRepo)(nil)

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) ListChannelSettings(clientID string) ([]ChannelSetting, error) {
	rows, err := r.db.Query(`
		SELECT id, client_id, channel_id, is_active, default_style, default_language, default_length
		FROM channel_settings
		WHERE client_id = ?
		ORDER BY channel_id
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel settings: %w", err)
	}
	defer rows.Close()

	var settings []ChannelSetting
	for rows.Next() {
		var cs ChannelSetting
		err := rows.Scan(
			&cs.ID, &cs.ClientID, &cs.ChannelID, &cs.IsActive,
			&cs.DefaultStyle, &cs.DefaultLanguage, &cs.DefaultLength,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel setting row: %w", err)
		}
		settings = append(settings, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel setting rows: %w", err)
	}

	return settings, nil
}

func (r *SettingsRepo) UpsertChannelSettings(clientID string, settings []ChannelSetting) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, cs := range settings {
		_, err = tx.Exec(`
			INSERT INTO channel_settings (
				id, client_id, channel_id, is_active, default_style, default_language, default_length
			) VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (client_id, channel_id) DO UPDATE SET
				is_active = excluded.is_active,
				default_style = excluded.default_style,
				default_language = excluded.default_language,
				default_length = excluded.default_length
		`, uuid.NewString(), clientID, cs.ChannelID, cs.IsActive,
			cs.DefaultStyle, cs.DefaultLanguage, cs.DefaultLength)
		if err != nil {
			return fmt.Errorf("failed to upsert channel setting %s: %w", cs.ChannelID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit channel settings: %w", err)
	}

	return nil
}

func (r *SettingsRepo) GetGenerationSettings(clientID string) (*GenerationSettings, error) {
	var gs GenerationSettings
	var instruction sql.NullString
	err := r.db.QueryRow(`
		SELECT id, client_id, custom_instruction, separate_business_personal
		FROM generation_settings
		WHERE client_id = ?
	`, clientID).Scan(&gs.ID, &gs.ClientID, &instruction, &gs.SeparateBusinessPersonal)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation settings: %w", err)
	}

	if instruction.Valid {
		gs.CustomInstruction = &instruction.String
	}

	return &gs, nil
}

func (r *SettingsRepo) SaveGenerationSettings(settings *GenerationSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}

	_, err := r.db.Exec(`
		INSERT INTO generation_settings (id, client_id, custom_instruction, separate_business_personal)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (client_id) DO UPDATE SET
			custom_instruction = excluded.custom_instruction,
			separate_business_personal = excluded.separate_business_personal
	`, settings.ID, settings.ClientID, settings.CustomInstruction, settings.SeparateBusinessPersonal)

	if err != nil {
		return fmt.Errorf("failed to save generation settings: %w", err)
	}

	return nil
}
