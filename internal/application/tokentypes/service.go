package tokentypes

import (
	"context"
	"errors"

	"kudos-backend/internal/application/ledger"
	"kudos-backend/internal/domain"
	"kudos-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

// Service administers token-type definitions. Types stay editable but are
// never deleted while the transaction log references them.
type Service struct {
	DB *gorm.DB
}

// Input carries the administrative fields of a token type.
type Input struct {
	Name                   string `json:"name"`
	Value                  int    `json:"value"`
	Color                  string `json:"color"`
	Icon                   string `json:"icon"`
	AutoDistributionActive bool   `json:"auto_distribution_active"`
	DistributionAmount     int64  `json:"distribution_amount"`
}

func (in *Input) validate() error {
	if !validation.IsValidTokenName(in.Name) {
		return ErrInvalidName
	}
	if in.Color != "" && !validation.IsValidHexColor(in.Color) {
		return ErrInvalidColor
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.TokenType, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	tt := domain.TokenType{
		Name:                   in.Name,
		Value:                  in.Value,
		Color:                  in.Color,
		Icon:                   in.Icon,
		AutoDistributionActive: in.AutoDistributionActive,
		DistributionAmount:     in.DistributionAmount,
	}
	if tt.Value <= 0 {
		tt.Value = 1
	}
	if tt.DistributionAmount <= 0 {
		tt.DistributionAmount = 1
	}
	if err := s.DB.WithContext(ctx).Create(&tt).Error; err != nil {
		return nil, err
	}
	return &tt, nil
}

func (s *Service) Update(ctx context.Context, id uint, in Input) (*domain.TokenType, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var tt domain.TokenType
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrIntegrity
			}
			return err
		}
		tt.Name = in.Name
		tt.Value = in.Value
		tt.Color = in.Color
		tt.Icon = in.Icon
		tt.AutoDistributionActive = in.AutoDistributionActive
		if in.DistributionAmount > 0 {
			tt.DistributionAmount = in.DistributionAmount
		}
		return tx.Save(&tt).Error
	})
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// Delete removes a token type that no transaction references. Zeroed balance
// rows for the type are removed with it; any log reference blocks deletion.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tt domain.TokenType
		if err := tx.First(&tt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrIntegrity
			}
			return err
		}
		var n int64
		if err := tx.Model(&domain.TokenTransaction{}).Where("token_type_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrTokenTypeInUse
		}
		if err := tx.Where("token_type_id = ?", id).Delete(&domain.EmployeeTokenBalance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tt).Error
	})
}

func (s *Service) List(ctx context.Context) ([]domain.TokenType, error) {
	var types []domain.TokenType
	if err := s.DB.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
