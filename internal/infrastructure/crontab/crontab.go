package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"

	"chat-server/internal/config"
	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/logger"
	"chat-server/internal/infrastructure/metrics"
	"chat-server/internal/utils/platformerrors"
)

const CronJobTimeout = 10 * time.Minute

// Crontab runs the guest retention sweep on a daily schedule.
type Crontab struct {
	ctab  *crontab.Crontab
	users *user.Service
	cfg   *config.Config
}

func NewCrontab(users *user.Service, cfg *config.Config) *Crontab {
	return &Crontab{
		ctab:  crontab.New(),
		users: users,
		cfg:   cfg,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	if c.cfg.GuestSweepEnabled {
		// execute once on server start
		c.sweepStaleGuests(ctx)

		cronExpr := fmt.Sprintf("0 %d * * *", c.cfg.GuestSweepHourUTC)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.sweepStaleGuests(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add guest sweep job")
		}
		log.Info().Msgf("Guest retention sweep scheduled: daily at %02d:00 UTC", c.cfg.GuestSweepHourUTC)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepStaleGuests(ctx context.Context) {
	log := logger.GetLogger()

	cutoff := time.Now().AddDate(0, 0, -c.cfg.GuestRetentionDays)
	purged, err := c.users.PurgeStaleGuests(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge stale guest profiles")
		return
	}

	if purged > 0 {
		metrics.GuestsPurgedTotal.Add(float64(purged))
		log.Info().Int64("purged", purged).Msg("Removed stale guest profiles")
	}
}
