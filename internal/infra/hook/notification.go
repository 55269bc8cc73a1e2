package hook

import (
	"context"
	"log/slog"

	"futsal-reserve/internal/infra/repository"
	"futsal-reserve/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationHook runs after the booking transaction commits. The outbox job
// is already written inside that transaction; the hook refreshes the
// users.point cache column and logs the committed event. Failures are logged
// and swallowed: the committed reservation must not be affected.
type NotificationHook struct {
	users *repository.UserRepository
}

func NewNotificationHook(pool *pgxpool.Pool) shared.NotificationHook {
	return &NotificationHook{
		users: repository.NewUserRepository(pool),
	}
}

func (h *NotificationHook) Notify(ctx context.Context, event shared.NotificationEvent) {
	if err := h.users.RefreshPointCache(ctx, event.UserID, event.NewBalance); err != nil {
		slog.Error("failed to refresh point cache",
			"user_id", event.UserID,
			"error", err.Error())
		return
	}

	slog.Info("reservation event committed",
		"type", string(event.Type),
		"reservation_id", event.ReservationID,
		"new_balance", event.NewBalance)
}
