package service

import (
	"time"

	"devjobs/board-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenCleanup periodically clears expired reset token fields so
// stale secrets don't sit in the database forever. Expiry already
// makes them unusable, this only tidies up
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			r := db.
				Model(model.User{}).
				Where("reset_expires < ?", time.Now()).
				Updates(map[string]any{
					"reset_token":   nil,
					"reset_expires": nil,
				})
			if r.Error != nil {
				zap.L().Error("Failed to clear expired reset tokens", zap.Error(r.Error))
				continue
			}

			if r.RowsAffected > 0 {
				zap.L().Debug("Cleared expired reset tokens", zap.Int64("count", r.RowsAffected))
			}
		}
	}()
}
