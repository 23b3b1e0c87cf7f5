package crontab

import (
	"context"
	"fmt"

	"github.com/mileusna/crontab"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/domain/conversation"
	"ursa-server/spatial-api/internal/infrastructure/logger"
	"ursa-server/spatial-api/internal/infrastructure/metrics"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// Crontab drives periodic housekeeping. Its only job today is evicting
// buffered conversations that have been idle past the configured TTL.
type Crontab struct {
	ctab  *crontab.Crontab
	cfg   *config.Config
	store *conversation.Store
}

func NewCrontab(cfg *config.Config, store *conversation.Store) *Crontab {
	return &Crontab{
		ctab:  crontab.New(),
		cfg:   cfg,
		store: store,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	interval := c.cfg.ChatSweepIntervalMinutes
	if interval <= 0 {
		interval = 15
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", interval)
	if err := c.ctab.AddJob(cronExpr, c.sweepConversations); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add conversation sweep job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepConversations() {
	removed := c.store.SweepIdle(c.cfg.ChatConversationTTL)
	if removed > 0 {
		metrics.ConversationsSweptTotal.Add(float64(removed))
		log := logger.GetLogger()
		log.Info().Int("removed", removed).Msg("swept idle conversations")
	}
}
