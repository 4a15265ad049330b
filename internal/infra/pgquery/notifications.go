package pgquery

import (
	"context"

	"lab-seat-reservation/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const notificationColumns = `id, kind, topic, payload, run_at, attempts, status, last_error, created_at, updated_at`

const createNotificationJob = `
INSERT INTO notification_jobs (kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4)`

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   pgtype.Timestamptz
}

func (q *Queries) CreateNotificationJob(ctx context.Context, dbtx db.DBTX, arg CreateNotificationJobParams) error {
	_, err := dbtx.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt)
	return err
}

// Rows stay locked until the claiming transaction ends; concurrent
// dispatchers skip them.
const claimDueNotificationJobs = `
SELECT ` + notificationColumns + `
FROM notification_jobs
WHERE status = 'pending' AND run_at <= $1
ORDER BY run_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED`

func (q *Queries) ClaimDueNotificationJobs(ctx context.Context, dbtx db.DBTX, now pgtype.Timestamptz, limit int32) ([]NotificationJobs, error) {
	return collectAll[NotificationJobs](ctx, dbtx, claimDueNotificationJobs, now, limit)
}

const updateNotificationJobStatus = `
UPDATE notification_jobs
SET status = $2, attempts = $3, last_error = $4, run_at = $5, updated_at = $6
WHERE id = $1`

type UpdateNotificationJobStatusParams struct {
	ID        uuid.UUID
	Status    string
	Attempts  int32
	LastError pgtype.Text
	RunAt     pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateNotificationJobStatus(ctx context.Context, dbtx db.DBTX, arg UpdateNotificationJobStatusParams) error {
	_, err := dbtx.Exec(ctx, updateNotificationJobStatus,
		arg.ID, arg.Status, arg.Attempts, arg.LastError, arg.RunAt, arg.UpdatedAt,
	)
	return err
}

const countNotificationJobsByStatus = `SELECT count(*) FROM notification_jobs WHERE status = $1`

func (q *Queries) CountNotificationJobsByStatus(ctx context.Context, dbtx db.DBTX, status string) (int64, error) {
	var n int64
	err := dbtx.QueryRow(ctx, countNotificationJobsByStatus, status).Scan(&n)
	return n, err
}
