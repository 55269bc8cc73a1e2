package repository

import (
	"context"
	"time"

	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateJob enqueues an outbox row for an external delivery worker.
func (r *NotificationRepository) CreateJob(ctx context.Context, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (topic, payload, run_at)
		VALUES ($1, $2, $3)`,
		topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
