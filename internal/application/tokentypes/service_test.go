package tokentypes

import (
	"context"
	"testing"

	"kudos-backend/internal/application/ledger"
	"kudos-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTokenTypesTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Employee{},
		&domain.TokenType{},
		&domain.EmployeeTokenBalance{},
		&domain.TokenTransaction{},
	))
	return &Service{DB: db}, db
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	svc, _ := setupTokenTypesTest(t)
	ctx := context.Background()

	tt, err := svc.Create(ctx, Input{Name: "Gold Star", Color: "#FFD700", Icon: "star"})
	require.NoError(t, err)
	assert.Equal(t, 1, tt.Value)
	assert.Equal(t, int64(1), tt.DistributionAmount)

	_, err = svc.Create(ctx, Input{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Create(ctx, Input{Name: "Silver", Color: "gold"})
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestUpdate_EditsExistingType(t *testing.T) {
	svc, _ := setupTokenTypesTest(t)
	ctx := context.Background()

	tt, err := svc.Create(ctx, Input{Name: "Gold Star", Value: 2})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, tt.ID, Input{
		Name: "Gold Star", Value: 3, Color: "#FD0", AutoDistributionActive: true, DistributionAmount: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Value)
	assert.Equal(t, "#FD0", updated.Color)
	assert.True(t, updated.AutoDistributionActive)
	assert.Equal(t, int64(4), updated.DistributionAmount)

	_, err = svc.Update(ctx, 9999, Input{Name: "Nope"})
	assert.ErrorIs(t, err, ledger.ErrIntegrity)
}

func TestDelete_RefusedWhileReferenced(t *testing.T) {
	svc, db := setupTokenTypesTest(t)
	ctx := context.Background()

	tt, err := svc.Create(ctx, Input{Name: "Gold Star"})
	require.NoError(t, err)

	emp := domain.Employee{FullName: "alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(&emp).Error)
	require.NoError(t, db.Create(&domain.TokenTransaction{
		ToEmployeeID: emp.ID, TokenTypeID: tt.ID, Count: 1,
	}).Error)

	err = svc.Delete(ctx, tt.ID)
	assert.ErrorIs(t, err, ErrTokenTypeInUse)

	var n int64
	require.NoError(t, db.Model(&domain.TokenType{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestDelete_UnreferencedTypeRemoved(t *testing.T) {
	svc, db := setupTokenTypesTest(t)
	ctx := context.Background()

	tt, err := svc.Create(ctx, Input{Name: "Gold Star"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.EmployeeTokenBalance{
		EmployeeID: 1, TokenTypeID: tt.ID, Count: 0,
	}).Error)

	require.NoError(t, svc.Delete(ctx, tt.ID))

	var types, balances int64
	require.NoError(t, db.Model(&domain.TokenType{}).Count(&types).Error)
	require.NoError(t, db.Model(&domain.EmployeeTokenBalance{}).Count(&balances).Error)
	assert.Equal(t, int64(0), types)
	assert.Equal(t, int64(0), balances)

	err = svc.Delete(ctx, tt.ID)
	assert.ErrorIs(t, err, ledger.ErrIntegrity)
}

func TestList_OrderedByID(t *testing.T) {
	svc, _ := setupTokenTypesTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Gold Star"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "High Five"})
	require.NoError(t, err)

	types, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Gold Star", types[0].Name)
	assert.Equal(t, "High Five", types[1].Name)
}
