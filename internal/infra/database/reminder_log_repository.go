package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/xavierca1/dealflow/internal/entity"
)

const uniqueViolation = "23505"

type ReminderLogRepository struct {
	DB *sql.DB
}

func NewReminderLogRepository(db *sql.DB) *ReminderLogRepository {
	return &ReminderLogRepository{DB: db}
}

// SentAmong reports which of the interventions already had a reminder on day
// (YYYY-MM-DD).
func (r *ReminderLogRepository) SentAmong(ctx context.Context, interventionIDs []int64, day string) (map[int64]bool, error) {
	sent := make(map[int64]bool)
	if len(interventionIDs) == 0 {
		return sent, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT intervention_id
		FROM reminder_notifications
		WHERE day = $1::date AND intervention_id = ANY($2::bigint[])
	`, day, pq.Array(interventionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		sent[id] = true
	}
	return sent, rows.Err()
}

func (r *ReminderLogRepository) Record(ctx context.Context, interventionID int64, day, recipient string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reminder_notifications (intervention_id, day, recipient)
		VALUES ($1, $2::date, $3)
	`, interventionID, day, recipient)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrReminderRecorded
		}
		return err
	}
	return nil
}
