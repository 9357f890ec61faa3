package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/consultkit/consultkit/internal/domain/analytics"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/domain/usage"
	"github.com/consultkit/consultkit/internal/shared/biztime"
	"github.com/consultkit/consultkit/internal/shared/constants"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/goroutine"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

const recordTimeout = 5 * time.Second

type RunToolCommand struct {
	Slug string
	Body map[string]any
	// UserID is nil for anonymous runs, which only public tools allow.
	UserID *uint
}

// RunToolUseCase validates a run, reserves it against the caller's quota and
// calls the completion provider.
type RunToolUseCase struct {
	catalog       tool.Catalog
	completer     tool.Completer
	quota         QuotaGate
	events        RunEventRecorder
	sanitize      tool.Sanitizer
	exposeDetails bool
	logger        logger.Interface
	now           func() time.Time
}

func NewRunToolUseCase(
	catalog tool.Catalog,
	completer tool.Completer,
	quota QuotaGate,
	events RunEventRecorder,
	sanitize tool.Sanitizer,
	exposeDetails bool,
	logger logger.Interface,
) *RunToolUseCase {
	return &RunToolUseCase{
		catalog:       catalog,
		completer:     completer,
		quota:         quota,
		events:        events,
		sanitize:      sanitize,
		exposeDetails: exposeDetails,
		logger:        logger,
		now:           biztime.NowUTC,
	}
}

func (uc *RunToolUseCase) Execute(ctx context.Context, cmd RunToolCommand) (result *tool.Result, err error) {
	t, ok := uc.catalog.Get(cmd.Slug)
	if !ok {
		return nil, errors.NewNotFoundError("Tool not found")
	}

	started := time.Now()
	defer func() {
		uc.recordEvent(cmd, started, err)
	}()

	if cmd.UserID == nil && !t.IsPublic() {
		return nil, errors.NewUnauthorizedError("Authentication required")
	}

	input, err := t.ParseInput(cmd.Body, uc.sanitize)
	if err != nil {
		var missing *tool.MissingFieldError
		if stderrors.As(err, &missing) {
			return nil, errors.NewValidationError(missing.Error())
		}
		return nil, errors.NewValidationError("Invalid input", err.Error())
	}

	var gate *gatedRun
	if cmd.UserID != nil {
		gate, err = uc.reserveRun(ctx, *cmd.UserID, t)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err != nil {
				uc.releaseRun(ctx, gate, t)
			}
		}()
	}

	req, err := t.BuildRequest(input)
	if err != nil {
		uc.logger.Errorw("failed to render prompt", "error", err, "tool", t.Slug())
		return nil, errors.NewInternalError(constants.ErrMsgInternalServerError)
	}

	text, err := uc.completer.Complete(ctx, req)
	if err != nil {
		uc.logger.Errorw("completion failed", "error", err, "tool", t.Slug())
		if uc.exposeDetails {
			return nil, errors.NewProviderError(constants.ErrMsgProviderFailure, err.Error())
		}
		return nil, errors.NewProviderError(constants.ErrMsgProviderFailure)
	}

	if gate != nil {
		uc.quota.Confirm(gate.userID, t.Name(), gate.reservation)
	}

	return &tool.Result{
		OutputKey: t.OutputKey(),
		Inputs:    input,
		Output:    tool.ParseCompletion(text),
		Timestamp: uc.now(),
	}, nil
}

// reserveRun checks the user's quota and takes one run from it before the
// provider is called, so concurrent runs cannot exceed the limit.
func (uc *RunToolUseCase) reserveRun(ctx context.Context, userID uint, t *tool.Tool) (*gatedRun, error) {
	q, err := uc.quota.Evaluate(ctx, userID, t.Slug())
	if err != nil {
		return nil, errors.NewInternalError(constants.ErrMsgInternalServerError)
	}
	if !q.HasAccess {
		return nil, errors.NewForbiddenError("Your plan does not include this tool")
	}
	if q.Exhausted() {
		return nil, quotaExhausted(q)
	}

	r, err := uc.quota.Reserve(ctx, userID, q)
	if err != nil {
		if stderrors.Is(err, usage.ErrQuotaExhausted) {
			return nil, quotaExhausted(q)
		}
		uc.logger.Errorw("failed to reserve usage", "error", err, "tool", t.Slug(), "user_id", userID)
		return nil, errors.NewInternalError(constants.ErrMsgInternalServerError)
	}
	return &gatedRun{userID: userID, reservation: r}, nil
}

// releaseRun gives back the reserved run of a failed call. It outlives a
// cancelled request context so an aborted client still gets the run back.
func (uc *RunToolUseCase) releaseRun(ctx context.Context, gate *gatedRun, t *tool.Tool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := uc.quota.Release(ctx, gate.userID, gate.reservation); err != nil {
		uc.logger.Errorw("failed to release usage", "error", err, "tool", t.Slug(), "user_id", gate.userID)
	}
}

func quotaExhausted(q usage.Quota) error {
	return errors.NewRateLimitedError("Usage limit reached for this tool",
		"resets at "+biztime.Timestamp(q.PeriodEnd))
}

func (uc *RunToolUseCase) recordEvent(cmd RunToolCommand, started time.Time, runErr error) {
	if uc.events == nil {
		return
	}
	event := &analytics.ToolRunEvent{
		UserID:    cmd.UserID,
		ToolSlug:  cmd.Slug,
		Success:   runErr == nil,
		LatencyMs: time.Since(started).Milliseconds(),
		CreatedAt: uc.now(),
	}
	if runErr != nil {
		event.ErrorType = string(errors.ErrorTypeInternal)
		if appErr := errors.GetAppError(runErr); appErr != nil {
			event.ErrorType = string(appErr.Type)
		}
	}

	goroutine.SafeGo(uc.logger, "record-tool-run", func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := uc.events.Record(ctx, event); err != nil {
			uc.logger.Warnw("failed to record tool run", "error", err, "tool", event.ToolSlug)
		}
	})
}

type gatedRun struct {
	userID      uint
	reservation usage.Reservation
}
