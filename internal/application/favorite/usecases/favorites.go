package usecases

import (
	"context"
	"fmt"
	"time"

	tooldto "github.com/consultkit/consultkit/internal/application/tool/dto"
	"github.com/consultkit/consultkit/internal/domain/favorite"
	"github.com/consultkit/consultkit/internal/domain/tool"
	"github.com/consultkit/consultkit/internal/shared/errors"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

type FavoriteDTO struct {
	Tool      tooldto.ToolSummaryDTO `json:"tool"`
	CreatedAt time.Time              `json:"created_at"`
}

type AddFavoriteUseCase struct {
	repo    favorite.Repository
	catalog tool.Catalog
	logger  logger.Interface
}

func NewAddFavoriteUseCase(repo favorite.Repository, catalog tool.Catalog, logger logger.Interface) *AddFavoriteUseCase {
	return &AddFavoriteUseCase{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute adds the tool to the user's favorites. Adding twice is a no-op.
func (uc *AddFavoriteUseCase) Execute(ctx context.Context, userID uint, slug string) error {
	if _, ok := uc.catalog.Get(slug); !ok {
		return errors.NewNotFoundError("Tool not found")
	}

	if err := uc.repo.Add(ctx, &favorite.Favorite{UserID: userID, ToolSlug: slug}); err != nil {
		uc.logger.Errorw("failed to add favorite", "error", err, "user_id", userID, "tool", slug)
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

type RemoveFavoriteUseCase struct {
	repo   favorite.Repository
	logger logger.Interface
}

func NewRemoveFavoriteUseCase(repo favorite.Repository, logger logger.Interface) *RemoveFavoriteUseCase {
	return &RemoveFavoriteUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *RemoveFavoriteUseCase) Execute(ctx context.Context, userID uint, slug string) error {
	removed, err := uc.repo.Remove(ctx, userID, slug)
	if err != nil {
		uc.logger.Errorw("failed to remove favorite", "error", err, "user_id", userID, "tool", slug)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return errors.NewNotFoundError("Favorite not found")
	}
	return nil
}

type ListFavoritesUseCase struct {
	repo    favorite.Repository
	catalog tool.Catalog
	logger  logger.Interface
}

func NewListFavoritesUseCase(repo favorite.Repository, catalog tool.Catalog, logger logger.Interface) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// Execute lists favorites newest first. Favorites whose tool left the
// catalog are skipped.
func (uc *ListFavoritesUseCase) Execute(ctx context.Context, userID uint) ([]FavoriteDTO, error) {
	favs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list favorites", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		t, ok := uc.catalog.Get(f.ToolSlug)
		if !ok {
			continue
		}
		out = append(out, FavoriteDTO{Tool: tooldto.ToToolSummaryDTO(t), CreatedAt: f.CreatedAt})
	}
	return out, nil
}
