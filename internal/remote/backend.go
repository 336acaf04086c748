package remote

import (
	"context"

	"github.com/julianstephens/vitals/internal/models"
)

// Backend is the remote sync boundary. Implementations require an
// authenticated connection; callers go through Service, which treats the
// whole backend as strictly advisory.
type Backend interface {
	GetUserGoals(ctx context.Context) (models.GoalSet, bool, error)
	SaveUserGoals(ctx context.Context, goals models.GoalSet) error

	GetStreaks(ctx context.Context) (models.StreakSet, bool, error)
	SaveStreaks(ctx context.Context, streaks models.StreakSet) error

	GetDailyLogs(ctx context.Context, days int) ([]models.DailyLog, error)
	SaveDailyLog(ctx context.Context, log models.DailyLog) error

	Close() error
}
