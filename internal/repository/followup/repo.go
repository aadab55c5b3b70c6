package followup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"

	"github.com/propflow/followup-notifier/internal/model"
)

var (
	ErrFollowUpNotFound = errors.New("follow-up not found")
	ErrNoFollowUpsFound = errors.New("no follow-ups found")
)

// Repository provides methods to interact with the followups table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new follow-up repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

const upsertQuery = `
		INSERT INTO followups (
		    id, type, status, priority,
		    property_id, property_address, work_order_id,
		    vendor_name, vendor_contact, owner_name, owner_contact,
		    title, description, action_needed,
		    due_date, remind_at, completed_at, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
		    type = EXCLUDED.type,
		    priority = EXCLUDED.priority,
		    property_id = EXCLUDED.property_id,
		    property_address = EXCLUDED.property_address,
		    work_order_id = EXCLUDED.work_order_id,
		    vendor_name = EXCLUDED.vendor_name,
		    vendor_contact = EXCLUDED.vendor_contact,
		    owner_name = EXCLUDED.owner_name,
		    owner_contact = EXCLUDED.owner_contact,
		    title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    action_needed = EXCLUDED.action_needed,
		    due_date = EXCLUDED.due_date,
		    remind_at = EXCLUDED.remind_at,
		    metadata = EXCLUDED.metadata,
		    status = CASE WHEN followups.status = 'PENDING' THEN EXCLUDED.status ELSE followups.status END,
		    completed_at = CASE WHEN followups.status = 'PENDING' THEN EXCLUDED.completed_at ELSE followups.completed_at END;
    `

// Upsert inserts a follow-up or, on an id conflict, replaces its
// source-controlled fields with the latest state from the source.
// Reminder-lifecycle fields (reminders_sent, last_reminder_at, and
// status once it has advanced past PENDING) are never reset by
// re-ingestion.
func (r *Repository) Upsert(ctx context.Context, f model.FollowUp) error {
	meta, err := json.Marshal(f.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx, upsertQuery,
		f.ID, f.Type, f.Status, f.Priority,
		f.PropertyID, f.PropertyAddress, f.WorkOrderID,
		f.VendorName, f.VendorContact, f.OwnerName, f.OwnerContact,
		f.Title, f.Description, f.ActionNeeded,
		f.DueDate, f.RemindAt, f.CompletedAt, meta,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert follow-up: %w", err)
	}

	return nil
}

const dueQuery = `
		SELECT id, type, status, priority,
		       property_id, property_address, work_order_id,
		       vendor_name, vendor_contact, owner_name, owner_contact,
		       title, description, action_needed,
		       created_at, due_date, remind_at, completed_at,
		       reminders_sent, last_reminder_at, metadata
		FROM followups
		WHERE status IN ('PENDING', 'REMINDED') AND remind_at <= $1
		ORDER BY CASE priority
		    WHEN 'URGENT' THEN 0
		    WHEN 'HIGH' THEN 1
		    WHEN 'MEDIUM' THEN 2
		    ELSE 3
		END, due_date;
    `

// DueForReminder returns follow-ups eligible for notification at the
// given moment: PENDING or REMINDED with remind_at in the past, ordered
// by priority then earliest due date. REMINDED rows stay eligible until
// completed, so every sweep escalates unresolved follow-ups again.
func (r *Repository) DueForReminder(ctx context.Context, now time.Time) ([]model.FollowUp, error) {
	rows, err := r.db.QueryContext(ctx, dueQuery, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []model.FollowUp
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}

		followUps = append(followUps, f)
	}

	return followUps, rows.Err()
}

// MarkReminded records one successful notification: increments the
// escalation counter, stamps the send time, and advances the status to
// REMINDED.
func (r *Repository) MarkReminded(ctx context.Context, id string, sentAt time.Time) error {
	query := `
		UPDATE followups
		SET status = 'REMINDED', reminders_sent = reminders_sent + 1, last_reminder_at = $2
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id, sentAt)
	if err != nil {
		return fmt.Errorf("failed to mark follow-up reminded: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrFollowUpNotFound
	}

	return nil
}

// GetFollowUpStatusByID retrieves the status of a follow-up by its ID.
func (r *Repository) GetFollowUpStatusByID(ctx context.Context, id string) (string, error) {
	query := `
		SELECT status
		FROM followups
		WHERE id = $1;
    `

	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrFollowUpNotFound
		}

		return "", fmt.Errorf("failed to get follow-up status: %w", err)
	}

	return status, nil
}

// ListFollowUps retrieves all follow-ups ordered by due date ascending.
func (r *Repository) ListFollowUps(ctx context.Context) ([]model.FollowUp, error) {
	query := `
		SELECT id, type, status, priority,
		       property_id, property_address, work_order_id,
		       vendor_name, vendor_contact, owner_name, owner_contact,
		       title, description, action_needed,
		       created_at, due_date, remind_at, completed_at,
		       reminders_sent, last_reminder_at, metadata
		FROM followups
		ORDER BY due_date;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}
	defer rows.Close()

	var followUps []model.FollowUp
	for rows.Next() {
		f, err := scanFollowUp(rows)
		if err != nil {
			return nil, err
		}

		followUps = append(followUps, f)
	}

	if len(followUps) == 0 {
		return nil, ErrNoFollowUpsFound
	}

	return followUps, nil
}

func scanFollowUp(rows *sql.Rows) (model.FollowUp, error) {
	var (
		f              model.FollowUp
		completedAt    sql.NullTime
		lastReminderAt sql.NullTime
		meta           []byte
	)

	err := rows.Scan(
		&f.ID, &f.Type, &f.Status, &f.Priority,
		&f.PropertyID, &f.PropertyAddress, &f.WorkOrderID,
		&f.VendorName, &f.VendorContact, &f.OwnerName, &f.OwnerContact,
		&f.Title, &f.Description, &f.ActionNeeded,
		&f.CreatedAt, &f.DueDate, &f.RemindAt, &completedAt,
		&f.RemindersSent, &lastReminderAt, &meta,
	)
	if err != nil {
		return model.FollowUp{}, fmt.Errorf("failed to scan follow-up: %w", err)
	}

	if completedAt.Valid {
		f.CompletedAt = &completedAt.Time
	}
	if lastReminderAt.Valid {
		f.LastReminderAt = &lastReminderAt.Time
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &f.Metadata); err != nil {
			return model.FollowUp{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return f, nil
}
