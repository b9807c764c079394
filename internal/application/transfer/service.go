package transfer

import (
	"context"
	"errors"
	"time"

	"kudos-backend/internal/application/ledger"
	"kudos-backend/internal/domain"
)

// BalanceCache is notified after a committed transfer so cached reads do not
// serve the pre-transfer balance for longer than necessary. Optional.
type BalanceCache interface {
	Invalidate(ctx context.Context, employeeID, tokenTypeID uint) error
}

// Service executes token movements. Each call is a single atomic unit of
// work: log append, sender debit and receiver credit commit together or not
// at all. There is no multi-step saga and no partial visibility.
type Service struct {
	Store *ledger.Store
	Cache BalanceCache
	// Now stamps transactions; tests inject a fixed clock.
	Now func() time.Time
}

// Result reports the committed transaction and post-transfer balances.
// SenderBalance is nil for mints.
type Result struct {
	Transaction     *domain.TokenTransaction `json:"transaction"`
	SenderBalance   *int64                   `json:"sender_balance"`
	ReceiverBalance int64                    `json:"receiver_balance"`
}

// Transfer moves count tokens of the given type to toEmployeeID. A nil
// fromEmployeeID is a mint: no source balance exists and none is checked.
// A non-nil sender must differ from the receiver and must hold at least
// count tokens at commit time.
func (s *Service) Transfer(ctx context.Context, fromEmployeeID *uint, toEmployeeID, tokenTypeID uint, count int64, message string) (*Result, error) {
	if count <= 0 {
		return nil, ledger.ErrInvalidAmount
	}
	if fromEmployeeID != nil && *fromEmployeeID == toEmployeeID {
		return nil, ErrSelfTransfer
	}

	rec := &domain.TokenTransaction{
		FromEmployeeID: fromEmployeeID,
		ToEmployeeID:   toEmployeeID,
		TokenTypeID:    tokenTypeID,
		Count:          count,
		Message:        message,
		CreatedAt:      s.now(),
	}

	result := &Result{}
	err := s.Store.Atomic(ctx, func(ctx context.Context, tx *ledger.Store) error {
		if _, err := tx.AppendTransaction(ctx, rec); err != nil {
			return err
		}
		if fromEmployeeID != nil {
			if err := tx.AdjustBalance(ctx, *fromEmployeeID, tokenTypeID, -count); err != nil {
				if errors.Is(err, ledger.ErrNegativeBalance) {
					return ledger.ErrInsufficientBalance
				}
				return err
			}
		}
		if err := tx.AdjustBalance(ctx, toEmployeeID, tokenTypeID, count); err != nil {
			return err
		}

		if fromEmployeeID != nil {
			bal, err := tx.GetBalance(ctx, *fromEmployeeID, tokenTypeID)
			if err != nil {
				return err
			}
			result.SenderBalance = &bal
		}
		bal, err := tx.GetBalance(ctx, toEmployeeID, tokenTypeID)
		if err != nil {
			return err
		}
		result.ReceiverBalance = bal
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Transaction = rec

	if s.Cache != nil {
		_ = s.Cache.Invalidate(ctx, toEmployeeID, tokenTypeID)
		if fromEmployeeID != nil {
			_ = s.Cache.Invalidate(ctx, *fromEmployeeID, tokenTypeID)
		}
	}
	return result, nil
}

// Mint issues count tokens to an employee with no originating account, e.g.
// scheduled auto-distribution or an administrative grant.
func (s *Service) Mint(ctx context.Context, toEmployeeID, tokenTypeID uint, count int64, message string) (*Result, error) {
	return s.Transfer(ctx, nil, toEmployeeID, tokenTypeID, count, message)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
