package distribution

import (
	"context"
	"testing"
	"time"

	"kudos-backend/internal/application/ledger"
	"kudos-backend/internal/application/transfer"
	"kudos-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDistributionTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Employee{},
		&domain.TokenType{},
		&domain.EmployeeTokenBalance{},
		&domain.TokenTransaction{},
	))
	store := &ledger.Store{DB: db, Timeout: 5 * time.Second}
	return &Service{DB: db, Transfers: &transfer.Service{Store: store}}, db
}

func TestDistribute_MintsActiveTypesToEveryone(t *testing.T) {
	svc, db := setupDistributionTest(t)
	ctx := context.Background()

	alice := domain.Employee{FullName: "alice", Email: "alice@example.com"}
	bob := domain.Employee{FullName: "bob", Email: "bob@example.com"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	weekly := domain.TokenType{Name: "weekly", Value: 1, AutoDistributionActive: true, DistributionAmount: 5}
	manual := domain.TokenType{Name: "manual", Value: 1}
	require.NoError(t, db.Create(&weekly).Error)
	require.NoError(t, db.Create(&manual).Error)

	minted, err := svc.Distribute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, minted)

	for _, emp := range []uint{alice.ID, bob.ID} {
		bal, err := svc.Transfers.Store.GetBalance(ctx, emp, weekly.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), bal)

		bal, err = svc.Transfers.Store.GetBalance(ctx, emp, manual.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), bal)
	}

	var rows []domain.TokenTransaction
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Nil(t, row.FromEmployeeID)
		assert.Equal(t, weekly.ID, row.TokenTypeID)
		assert.Equal(t, "Scheduled distribution", row.Message)
	}

	// each sweep mints again
	minted, err = svc.Distribute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, minted)
	bal, err := svc.Transfers.Store.GetBalance(ctx, alice.ID, weekly.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bal)
}

func TestDistribute_NothingActive(t *testing.T) {
	svc, db := setupDistributionTest(t)
	require.NoError(t, db.Create(&domain.Employee{FullName: "alice", Email: "alice@example.com"}).Error)
	require.NoError(t, db.Create(&domain.TokenType{Name: "manual", Value: 1}).Error)

	minted, err := svc.Distribute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, minted)

	var rows int64
	require.NoError(t, db.Model(&domain.TokenTransaction{}).Count(&rows).Error)
	assert.Equal(t, int64(0), rows)
}
