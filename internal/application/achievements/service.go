package achievements

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kudos-backend/internal/application/ledger"
	"kudos-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Criteria kinds understood by the evaluator. Anything else in the criteria
// column is skipped and logged, never granted.
const (
	KindTokenTotal    = "token_total"
	KindTenureDays    = "tenure_days"
	KindReceivedCount = "received_count"
)

// Criteria is the tagged predicate stored in Achievement.Criteria.
// TokenTypeID 0 means "any token type" for the kinds that take one.
type Criteria struct {
	Kind        string `json:"kind"`
	TokenTypeID uint   `json:"token_type_id,omitempty"`
	Threshold   int64  `json:"threshold"`
}

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

// Evaluate checks every active achievement against the employee's current
// aggregate state and grants the satisfied ones. Idempotent: achievements
// already held are left untouched, re-running never duplicates a grant.
func (s *Service) Evaluate(ctx context.Context, employeeID uint) ([]domain.EmployeeAchievement, error) {
	var emp domain.Employee
	if err := s.DB.WithContext(ctx).First(&emp, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrIntegrity
		}
		return nil, err
	}

	var defs []domain.Achievement
	if err := s.DB.WithContext(ctx).Where("active = ?", true).Find(&defs).Error; err != nil {
		return nil, err
	}

	var granted []domain.EmployeeAchievement
	for _, def := range defs {
		ok, err := s.satisfied(ctx, &emp, def)
		if err != nil {
			if errors.Is(err, ErrUnknownCriteria) {
				log.Warn().Uint("achievement_id", def.ID).Str("name", def.Name).Msg("skipping achievement with unknown criteria kind")
				continue
			}
			return granted, err
		}
		if !ok {
			continue
		}
		grant, err := s.Grant(ctx, employeeID, def.ID)
		if errors.Is(err, ErrDuplicateGrant) {
			continue
		}
		if err != nil {
			return granted, err
		}
		granted = append(granted, *grant)
	}
	return granted, nil
}

// Grant records an achievement for an employee. ErrDuplicateGrant when the
// (employee, achievement) pair already holds one.
func (s *Service) Grant(ctx context.Context, employeeID, achievementID uint) (*domain.EmployeeAchievement, error) {
	grant := domain.EmployeeAchievement{
		EmployeeID:    employeeID,
		AchievementID: achievementID,
		ReceivedAt:    s.now(),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.EmployeeAchievement{}).
			Where("employee_id = ? AND achievement_id = ?", employeeID, achievementID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicateGrant
		}
		return tx.Create(&grant).Error
	})
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// Sweep evaluates every employee. Returns the number of new grants; one
// failing employee does not abort the rest.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	var employees []domain.Employee
	if err := s.DB.WithContext(ctx).Find(&employees).Error; err != nil {
		return 0, err
	}

	total := 0
	var lastErr error
	for _, emp := range employees {
		granted, err := s.Evaluate(ctx, emp.ID)
		if err != nil {
			log.Error().Err(err).Uint("employee_id", emp.ID).Msg("achievement evaluation failed")
			lastErr = err
			continue
		}
		total += len(granted)
	}
	if total > 0 {
		log.Info().Int("grants", total).Msg("achievement sweep granted badges")
	}
	return total, lastErr
}

func (s *Service) satisfied(ctx context.Context, emp *domain.Employee, def domain.Achievement) (bool, error) {
	var c Criteria
	if len(def.Criteria) == 0 {
		return false, ErrUnknownCriteria
	}
	if err := json.Unmarshal(def.Criteria, &c); err != nil {
		return false, ErrUnknownCriteria
	}

	switch c.Kind {
	case KindTokenTotal:
		var total int64
		q := s.DB.WithContext(ctx).Model(&domain.EmployeeTokenBalance{}).
			Where("employee_id = ?", emp.ID)
		if c.TokenTypeID != 0 {
			q = q.Where("token_type_id = ?", c.TokenTypeID)
		}
		if err := q.Select("COALESCE(SUM(count), 0)").Scan(&total).Error; err != nil {
			return false, err
		}
		return total >= c.Threshold, nil

	case KindTenureDays:
		if emp.HiredAt.IsZero() {
			return false, nil
		}
		days := int64(s.now().Sub(emp.HiredAt).Hours() / 24)
		return days >= c.Threshold, nil

	case KindReceivedCount:
		var n int64
		q := s.DB.WithContext(ctx).Model(&domain.TokenTransaction{}).
			Where("to_employee_id = ?", emp.ID)
		if c.TokenTypeID != 0 {
			q = q.Where("token_type_id = ?", c.TokenTypeID)
		}
		if err := q.Count(&n).Error; err != nil {
			return false, err
		}
		return n >= c.Threshold, nil
	}
	return false, ErrUnknownCriteria
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
