package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/dealflow/internal/entity"
)

type OutreachDraftRepository struct {
	DB *sql.DB
}

func NewOutreachDraftRepository(db *sql.DB) *OutreachDraftRepository {
	return &OutreachDraftRepository{DB: db}
}

func (r *OutreachDraftRepository) Upsert(ctx context.Context, d *entity.OutreachDraft) error {
	query := `
		INSERT INTO outreach_drafts (user_id, intervention_id, notes, follow_up_date, follow_up_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		ON CONFLICT (user_id, intervention_id)
		DO UPDATE SET
			notes = EXCLUDED.notes,
			follow_up_date = EXCLUDED.follow_up_date,
			follow_up_time = EXCLUDED.follow_up_time,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	var updatedAt sql.NullTime
	if !d.UpdatedAt.IsZero() {
		updatedAt = sql.NullTime{Time: d.UpdatedAt, Valid: true}
	}

	return r.DB.QueryRowContext(ctx, query,
		d.UserID,
		d.InterventionID,
		d.Notes,
		d.FollowUpDate,
		d.FollowUpTime,
		updatedAt,
	).Scan(&d.UpdatedAt)
}

func (r *OutreachDraftRepository) Find(ctx context.Context, userID string, interventionID int64) (*entity.OutreachDraft, error) {
	query := `
		SELECT notes, follow_up_date, follow_up_time, updated_at
		FROM outreach_drafts
		WHERE user_id = $1 AND intervention_id = $2
	`

	d := &entity.OutreachDraft{UserID: userID, InterventionID: interventionID}
	err := r.DB.QueryRowContext(ctx, query, userID, interventionID).
		Scan(&d.Notes, &d.FollowUpDate, &d.FollowUpTime, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *OutreachDraftRepository) Delete(ctx context.Context, userID string, interventionID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM outreach_drafts WHERE user_id = $1 AND intervention_id = $2`,
		userID, interventionID)
	return err
}
