package usecases

import (
	"context"

	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// QuotaNotifier emails a user whose quota for a tool ran out, unless they
// turned email notifications off. Failures are only logged.
type QuotaNotifier struct {
	userRepo userLookup
	prefRepo preferenceLookup
	mailer   QuotaMailer
	logger   logger.Interface
}

func NewQuotaNotifier(userRepo userLookup, prefRepo preferenceLookup, mailer QuotaMailer, logger logger.Interface) *QuotaNotifier {
	return &QuotaNotifier{
		userRepo: userRepo,
		prefRepo: prefRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

func (n *QuotaNotifier) QuotaReached(ctx context.Context, userID uint, toolName string, q usage.Quota) {
	u, err := n.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		n.logger.Warnw("quota notification skipped, user not loaded", "user_id", userID, "error", err)
		return
	}

	prefs, err := n.prefRepo.Get(ctx, userID)
	if err != nil {
		n.logger.Warnw("quota notification skipped, preferences not loaded", "user_id", userID, "error", err)
		return
	}
	if prefs != nil && !prefs.EmailNotifications {
		return
	}

	err = n.mailer.SendQuotaReached(ctx, QuotaMail{
		To:       u.Email(),
		Name:     u.Name(),
		ToolName: toolName,
		Limit:    q.Limit,
		ResetsAt: q.PeriodEnd,
	})
	if err != nil {
		n.logger.Errorw("failed to send quota notification", "error", err, "user_id", userID, "tool", q.ToolSlug)
		return
	}
	n.logger.Infow("quota notification sent", "user_id", userID, "tool", q.ToolSlug)
}
