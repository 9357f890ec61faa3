package migration

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/consultkit/consultkit/internal/infrastructure/persistence/models"
	"github.com/consultkit/consultkit/internal/shared/logger"
)

// AutoMigrateStrategy builds the schema from the gorm models. Used for
// sqlite, which has no versioned scripts.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting auto migration", "models_count", len(all))

	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	if err := seedFreePlan(db); err != nil {
		return err
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

// seedFreePlan mirrors the 00002 script so every database starts with a
// default plan.
func seedFreePlan(db *gorm.DB) error {
	free := &models.PlanModel{
		Slug:             "free",
		Name:             "Free",
		Description:      "Every tool, a few runs a month.",
		Currency:         "USD",
		Interval:         "month",
		Status:           "active",
		IsDefault:        true,
		AllTools:         true,
		DefaultToolLimit: 3,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(free).Error
	if err != nil {
		return fmt.Errorf("failed to seed free plan: %w", err)
	}
	return nil
}
