package repository

import (
	"context"
	"time"

	"lab-seat-reservation/internal/infra"
	"lab-seat-reservation/internal/infra/db"
	"lab-seat-reservation/internal/infra/pgquery"
	"lab-seat-reservation/internal/pkg/pgconv"
	"lab-seat-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	jobStatusPending = "pending"
	jobStatusSent    = "sent"
	jobStatusFailed  = "failed"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, dbtx db.DBTX, arg pgquery.CreateNotificationJobParams) error
	ClaimDueNotificationJobs(ctx context.Context, dbtx db.DBTX, now pgtype.Timestamptz, limit int32) ([]pgquery.NotificationJobs, error)
	UpdateNotificationJobStatus(ctx context.Context, dbtx db.DBTX, arg pgquery.UpdateNotificationJobStatusParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := pgquery.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
	}

	if err := r.queries.CreateNotificationJob(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks up to limit pending jobs whose run_at has passed. The locks
// last until tx ends.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	rows, err := r.queries.ClaimDueNotificationJobs(ctx, tx, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			Attempts: row.Attempts,
		}
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, job shared.NotificationJob, now time.Time) error {
	return r.update(ctx, tx, pgquery.UpdateNotificationJobStatusParams{
		ID:        job.ID,
		Status:    jobStatusSent,
		Attempts:  job.Attempts + 1,
		RunAt:     pgconv.TimeToPgtype(now),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
}

func (r *NotificationRepository) Reschedule(ctx context.Context, tx db.DBTX, job shared.NotificationJob, lastErr string, runAt, now time.Time) error {
	return r.update(ctx, tx, pgquery.UpdateNotificationJobStatusParams{
		ID:        job.ID,
		Status:    jobStatusPending,
		Attempts:  job.Attempts + 1,
		LastError: pgconv.StringPtrToPgtype(&lastErr),
		RunAt:     pgconv.TimeToPgtype(runAt),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, job shared.NotificationJob, lastErr string, now time.Time) error {
	return r.update(ctx, tx, pgquery.UpdateNotificationJobStatusParams{
		ID:        job.ID,
		Status:    jobStatusFailed,
		Attempts:  job.Attempts + 1,
		LastError: pgconv.StringPtrToPgtype(&lastErr),
		RunAt:     pgconv.TimeToPgtype(now),
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
}

func (r *NotificationRepository) update(ctx context.Context, tx db.DBTX, params pgquery.UpdateNotificationJobStatusParams) error {
	if err := r.queries.UpdateNotificationJobStatus(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update notification job", err)
	}
	return nil
}
