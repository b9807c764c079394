package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kudos-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store owns the ledger tables: token types, balance rows and the immutable
// transaction log. The log is the source of truth; balance rows are a
// derived cache kept in step inside the same unit of work.
type Store struct {
	DB *gorm.DB
	// Timeout bounds a single unit of work. Zero means no bound (used for
	// tx-scoped stores inside Atomic, which inherit the outer deadline).
	Timeout time.Duration
}

// Atomic runs fn against a transaction-scoped Store. Everything fn does
// commits together or rolls back together; concurrent readers never observe
// a partial write. The context handed to fn carries the store timeout.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{DB: tx})
	})
	return wrapStorage(err)
}

// GetBalance returns the cached balance for (employee, token type), 0 when
// no row exists yet.
func (s *Store) GetBalance(ctx context.Context, employeeID, tokenTypeID uint) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var row domain.EmployeeTokenBalance
	err := s.DB.WithContext(ctx).
		Where("employee_id = ? AND token_type_id = ?", employeeID, tokenTypeID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapStorage(err)
	}
	return row.Count, nil
}

// AdjustBalance applies delta to the balance row for (employee, token type).
// Credits create the row lazily; debits are guarded in the WHERE clause so a
// stale read can never overdraft — zero rows affected means the balance was
// too low and ErrNegativeBalance is returned.
func (s *Store) AdjustBalance(ctx context.Context, employeeID, tokenTypeID uint, delta int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	db := s.DB.WithContext(ctx)

	if delta >= 0 {
		row := domain.EmployeeTokenBalance{
			EmployeeID:  employeeID,
			TokenTypeID: tokenTypeID,
			Count:       delta,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "token_type_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + ?", delta)}),
		}).Create(&row).Error
		return wrapStorage(err)
	}

	res := db.Model(&domain.EmployeeTokenBalance{}).
		Where("employee_id = ? AND token_type_id = ? AND count >= ?", employeeID, tokenTypeID, -delta).
		Update("count", gorm.Expr("count + ?", delta))
	if res.Error != nil {
		return wrapStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNegativeBalance
	}
	return nil
}

// AppendTransaction validates and writes one immutable log row. The count
// must be positive and every referenced employee and token type must exist.
func (s *Store) AppendTransaction(ctx context.Context, rec *domain.TokenTransaction) (*domain.TokenTransaction, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	db := s.DB.WithContext(ctx)

	if rec.Count <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.checkRefs(db, rec.FromEmployeeID, rec.ToEmployeeID, rec.TokenTypeID); err != nil {
		return nil, err
	}
	if err := db.Create(rec).Error; err != nil {
		return nil, wrapStorage(err)
	}
	return rec, nil
}

// RebuildBalance recomputes the balance for (employee, token type) from the
// transaction log and rewrites the cached row. Repair/reconciliation path:
// the log is authoritative, the row is disposable.
func (s *Store) RebuildBalance(ctx context.Context, employeeID, tokenTypeID uint) (int64, error) {
	var balance int64
	err := s.Atomic(ctx, func(ctx context.Context, tx *Store) error {
		var credits, debits int64
		if err := tx.DB.Model(&domain.TokenTransaction{}).
			Where("to_employee_id = ? AND token_type_id = ?", employeeID, tokenTypeID).
			Select("COALESCE(SUM(count), 0)").Scan(&credits).Error; err != nil {
			return err
		}
		if err := tx.DB.Model(&domain.TokenTransaction{}).
			Where("from_employee_id = ? AND token_type_id = ?", employeeID, tokenTypeID).
			Select("COALESCE(SUM(count), 0)").Scan(&debits).Error; err != nil {
			return err
		}
		balance = credits - debits

		row := domain.EmployeeTokenBalance{
			EmployeeID:  employeeID,
			TokenTypeID: tokenTypeID,
			Count:       balance,
		}
		return tx.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "token_type_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": balance}),
		}).Create(&row).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *Store) checkRefs(db *gorm.DB, from *uint, to, tokenTypeID uint) error {
	var n int64
	if err := db.Model(&domain.Employee{}).Where("id = ?", to).Count(&n).Error; err != nil {
		return wrapStorage(err)
	}
	if n == 0 {
		return ErrIntegrity
	}
	if from != nil {
		if err := db.Model(&domain.Employee{}).Where("id = ?", *from).Count(&n).Error; err != nil {
			return wrapStorage(err)
		}
		if n == 0 {
			return ErrIntegrity
		}
	}
	if err := db.Model(&domain.TokenType{}).Where("id = ?", tokenTypeID).Count(&n).Error; err != nil {
		return wrapStorage(err)
	}
	if n == 0 {
		return ErrIntegrity
	}
	return nil
}

func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.Timeout)
}

// wrapStorage classifies an error: ledger sentinels pass through untouched,
// anything else from the driver becomes a (retryable) ErrStorage.
func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrInvalidAmount, ErrIntegrity, ErrInsufficientBalance, ErrNegativeBalance, ErrStorage} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
