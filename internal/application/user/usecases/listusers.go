package usecases

import (
	"context"
	"fmt"

	"github.com/consultkit/consultkit/internal/domain/user"
	"github.com/consultkit/consultkit/internal/shared/logger"
	"github.com/consultkit/consultkit/internal/shared/utils"
)

type ListUsersQuery struct {
	Page     int
	PageSize int
	Email    string
	Role     string
	Status   string
}

type ListUsersResult struct {
	Users    []*user.User
	Total    int64
	Page     int
	PageSize int
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	users, total, err := uc.userRepo.List(ctx, user.ListFilter{
		Page:     p.Page,
		PageSize: p.PageSize,
		Email:    query.Email,
		Role:     query.Role,
		Status:   query.Status,
	})
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersResult{
		Users:    users,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
