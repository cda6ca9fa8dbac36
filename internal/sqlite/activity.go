package sqlite

import (
	"context"
	"fmt"

	"github.com/icarus-portal/icarus-api/internal/domain/activity"
)

// ActivityRepository implements repository.ActivityRepository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends an entry to the activity feed
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	query := `
		INSERT INTO activity_log (project_id, application_id, professor_id, actor_id, event_type, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		entry.ProjectID, entry.ApplicationID, entry.ProfessorID, entry.ActorID,
		string(entry.Type), entry.Summary, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// ListByProfessor returns the professor's recent activity, newest first
func (r *ActivityRepository) ListByProfessor(ctx context.Context, professorID string, limit int) ([]activity.Entry, error) {
	query := `
		SELECT id, project_id, application_id, professor_id, actor_id, event_type, summary, created_at
		FROM activity_log
		WHERE professor_id = ?
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, professorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Entry
	for rows.Next() {
		var entry activity.Entry
		var eventType string
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.ApplicationID, &entry.ProfessorID,
			&entry.ActorID, &eventType, &entry.Summary, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.Type = activity.EventType(eventType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}
