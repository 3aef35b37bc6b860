package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// BuildType represents a tracked build configuration.
type BuildType struct {
	ID            string
	Enabled       bool
	LastSeenBuild int64
	LastSyncTime  *time.Time
	CreatedAt     time.Time
}

// BuildTypeRepo provides access to the tracked build configurations.
type BuildTypeRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewBuildTypeRepo creates a new BuildTypeRepo instance.
func NewBuildTypeRepo(db *sql.DB, logger *slog.Logger) *BuildTypeRepo {
	return &BuildTypeRepo{
		db:     db,
		logger: logger.With("component", "build_type_repo"),
	}
}

// ListEnabled returns all enabled build configurations.
func (r *BuildTypeRepo) ListEnabled() ([]BuildType, error) {
	query := `
		SELECT build_type_id, enabled, last_seen_build, last_sync_time, created_at
		FROM build_types
		WHERE enabled = 1
		ORDER BY build_type_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query build types: %w", err)
	}
	defer rows.Close()

	var result []BuildType
	for rows.Next() {
		var bt BuildType
		var lastSyncTime, createdAt sql.NullInt64

		if err := rows.Scan(
			&bt.ID,
			&bt.Enabled,
			&bt.LastSeenBuild,
			&lastSyncTime,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan build type: %w", err)
		}

		if lastSyncTime.Valid {
			t := time.Unix(lastSyncTime.Int64, 0)
			bt.LastSyncTime = &t
		}

		if createdAt.Valid {
			bt.CreatedAt = time.Unix(createdAt.Int64, 0)
		}

		result = append(result, bt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating build types: %w", err)
	}

	return result, nil
}

// UpdateLastSeen records the newest build id observed for a build
// configuration.
func (r *BuildTypeRepo) UpdateLastSeen(buildTypeID string, buildID int64) error {
	query := `
		UPDATE build_types
		SET last_seen_build = ?
		WHERE build_type_id = ?`

	result, err := r.db.Exec(query, buildID, buildTypeID)
	if err != nil {
		return fmt.Errorf("failed to update last_seen_build: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		r.logger.Warn("unknown build type on last seen update",
			"build_type", buildTypeID,
		)
	}

	return nil
}

// Sync reconciles the tracked build configurations with the list
// currently present on the server. New ones get added, vanished ones get
// soft deleted, existing ones get their sync time refreshed.
func (r *BuildTypeRepo) Sync(ids []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	existing, err := r.listEnabledInTx(tx)
	if err != nil {
		return fmt.Errorf("failed to list existing build types: %w", err)
	}

	now := time.Now().Unix()
	added := 0
	removed := 0

	for _, id := range ids {
		if r.existsInTx(tx, id) {
			if _, err := tx.Exec(
				`UPDATE build_types SET enabled = 1, last_sync_time = ? WHERE build_type_id = ?`,
				now, id,
			); err != nil {
				return fmt.Errorf("failed to refresh build type %s: %w", id, err)
			}

			continue
		}

		if _, err := tx.Exec(
			`INSERT INTO build_types(build_type_id, enabled, last_seen_build, last_sync_time, created_at)
			VALUES (?, 1, 0, ?, ?)`,
			id, now, now,
		); err != nil {
			return fmt.Errorf("failed to insert build type %s: %w", id, err)
		}

		if err := r.recordChange(tx, id, "ADD", now); err != nil {
			r.logger.Warn("failed to record build type change",
				"build_type", id,
				"action", "ADD",
				"err", err,
			)
		}

		added++
	}

	for _, bt := range existing {
		if idSet[bt.ID] {
			continue
		}

		if _, err := tx.Exec(
			`UPDATE build_types SET enabled = 0 WHERE build_type_id = ?`,
			bt.ID,
		); err != nil {
			return fmt.Errorf("failed to soft delete build type %s: %w", bt.ID, err)
		}

		if err := r.recordChange(tx, bt.ID, "DELETE", now); err != nil {
			r.logger.Warn("failed to record build type change",
				"build_type", bt.ID,
				"action", "DELETE",
				"err", err,
			)
		}

		removed++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug("build type sync finished",
		"added", added,
		"removed", removed,
		"total", len(ids),
	)

	return nil
}

func (r *BuildTypeRepo) listEnabledInTx(tx *sql.Tx) ([]BuildType, error) {
	rows, err := tx.Query(`SELECT build_type_id FROM build_types WHERE enabled = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BuildType
	for rows.Next() {
		var bt BuildType
		if err := rows.Scan(&bt.ID); err != nil {
			return nil, err
		}
		result = append(result, bt)
	}

	return result, rows.Err()
}

func (r *BuildTypeRepo) existsInTx(tx *sql.Tx, id string) bool {
	var exists int
	err := tx.QueryRow(`SELECT 1 FROM build_types WHERE build_type_id = ? LIMIT 1`, id).Scan(&exists)
	return err == nil
}

func (r *BuildTypeRepo) recordChange(tx *sql.Tx, id, action string, eventTime int64) error {
	_, err := tx.Exec(
		`INSERT INTO build_type_changes(build_type_id, action, event_time) VALUES (?, ?, ?)`,
		id, action, eventTime,
	)

	return err
}
