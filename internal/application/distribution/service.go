package distribution

import (
	"context"

	"kudos-backend/internal/application/transfer"
	"kudos-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service runs scheduled token grants: every token type with the
// auto-distribution flag set mints its configured amount to every employee.
// Each mint is its own unit of work, so one failure never holds back the
// rest of the sweep.
type Service struct {
	DB        *gorm.DB
	Transfers *transfer.Service
}

// Distribute performs one sweep and returns the number of mints applied.
func (s *Service) Distribute(ctx context.Context) (int, error) {
	var types []domain.TokenType
	if err := s.DB.WithContext(ctx).
		Where("auto_distribution_active = ?", true).
		Find(&types).Error; err != nil {
		return 0, err
	}
	if len(types) == 0 {
		return 0, nil
	}

	var employees []domain.Employee
	if err := s.DB.WithContext(ctx).Find(&employees).Error; err != nil {
		return 0, err
	}

	minted := 0
	var lastErr error
	for _, tt := range types {
		amount := tt.DistributionAmount
		if amount <= 0 {
			amount = 1
		}
		for _, emp := range employees {
			if _, err := s.Transfers.Mint(ctx, emp.ID, tt.ID, amount, "Scheduled distribution"); err != nil {
				log.Error().Err(err).
					Uint("employee_id", emp.ID).
					Uint("token_type_id", tt.ID).
					Msg("auto-distribution mint failed")
				lastErr = err
				continue
			}
			minted++
		}
	}
	log.Info().Int("mints", minted).Int("token_types", len(types)).Msg("auto-distribution sweep complete")
	return minted, lastErr
}
