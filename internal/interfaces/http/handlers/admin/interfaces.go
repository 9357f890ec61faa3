package admin

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	analyticsdto "github.com/consultkit/consultkit/internal/application/analytics/dto"
	plandto "github.com/consultkit/consultkit/internal/application/plan/dto"
	planusecases "github.com/consultkit/consultkit/internal/application/plan/usecases"
	userusecases "github.com/consultkit/consultkit/internal/application/user/usecases"
	"github.com/consultkit/consultkit/internal/shared/errors"
)

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd planusecases.CreatePlanCommand) (*plandto.PlanDTO, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd planusecases.UpdatePlanCommand) (*plandto.PlanDTO, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, id uint) (*plandto.PlanDTO, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, query planusecases.ListPlansQuery) (*planusecases.ListPlansResult, error)
}

type deletePlanUseCase interface {
	Execute(ctx context.Context, id uint) error
}

type setPlanStatusUseCase interface {
	Execute(ctx context.Context, cmd planusecases.SetPlanStatusCommand) (*plandto.PlanDTO, error)
}

type setPlanToolsUseCase interface {
	Execute(ctx context.Context, cmd planusecases.SetPlanToolsCommand) (*plandto.PlanDTO, error)
}

type assignSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd planusecases.AssignSubscriptionCommand) (*plandto.SubscriptionDTO, error)
}

type listUsersUseCase interface {
	Execute(ctx context.Context, query userusecases.ListUsersQuery) (*userusecases.ListUsersResult, error)
}

type overviewUseCase interface {
	Execute(ctx context.Context, days int) (*analyticsdto.OverviewDTO, error)
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}
