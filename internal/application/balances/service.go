package balances

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"kudos-backend/internal/application/ledger"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Service answers balance reads. With a Redis client configured it serves a
// read-through cache in front of the balance rows; without one it reads the
// store directly. Cached reads may briefly trail a concurrent transfer,
// which is acceptable for display purposes — the store row stays
// authoritative for transfers themselves.
type Service struct {
	Store *ledger.Store
	Redis *redis.Client
	TTL   time.Duration
}

func cacheKey(employeeID, tokenTypeID uint) string {
	return fmt.Sprintf("balance:%d:%d", employeeID, tokenTypeID)
}

// CurrentBalance returns the balance for (employee, token type), 0 when the
// employee was never credited with that type.
func (s *Service) CurrentBalance(ctx context.Context, employeeID, tokenTypeID uint) (int64, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey(employeeID, tokenTypeID)).Result()
		if err == nil {
			if n, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
				return n, nil
			}
		}
	}

	balance, err := s.Store.GetBalance(ctx, employeeID, tokenTypeID)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, cacheKey(employeeID, tokenTypeID), balance, s.TTL).Err(); err != nil {
			log.Warn().Err(err).Uint("employee_id", employeeID).Uint("token_type_id", tokenTypeID).Msg("balance cache set failed")
		}
	}
	return balance, nil
}

// Invalidate drops the cache entry for one (employee, token type) pair.
// Called by the transfer engine after a commit.
func (s *Service) Invalidate(ctx context.Context, employeeID, tokenTypeID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, cacheKey(employeeID, tokenTypeID)).Err()
}

// Reconcile rebuilds the balance row from the transaction log and drops the
// cache entry. Logs when the rebuilt value differs from the cached row,
// which indicates drift between log and cache.
func (s *Service) Reconcile(ctx context.Context, employeeID, tokenTypeID uint) (int64, error) {
	before, err := s.Store.GetBalance(ctx, employeeID, tokenTypeID)
	if err != nil {
		return 0, err
	}
	rebuilt, err := s.Store.RebuildBalance(ctx, employeeID, tokenTypeID)
	if err != nil {
		return 0, err
	}
	if rebuilt != before {
		log.Warn().
			Uint("employee_id", employeeID).
			Uint("token_type_id", tokenTypeID).
			Int64("cached", before).
			Int64("rebuilt", rebuilt).
			Msg("balance row drifted from transaction log")
	}
	if err := s.Invalidate(ctx, employeeID, tokenTypeID); err != nil {
		log.Warn().Err(err).Msg("balance cache invalidation failed")
	}
	return rebuilt, nil
}
