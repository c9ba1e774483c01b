package cron

import (
	"go-confession-board/internal/service"
	"go-confession-board/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Start schedules the background jobs. Currently only one: purging expired
// group invitations every 6 hours. The returned cron is stopped by the
// caller on shutdown.
func Start(inviteService *service.InviteService) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 */6 * * *", func() {
		removed, err := inviteService.PurgeExpired()
		if err != nil {
			logger.L.Error("failed to purge expired invitations", zap.Error(err))
			return
		}
		if removed > 0 {
			logger.L.Info("purged expired invitations", zap.Int64("removed", removed))
		}
	})
	if err != nil {
		logger.L.Error("failed to schedule invitation purge job", zap.Error(err))
	}

	c.Start()
	logger.L.Info("cron jobs started (invitation purge every 6h)")
	return c
}
