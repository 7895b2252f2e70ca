package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/orderdesk/internal/distributor/domain"
	distributorrepo "github.com/smallbiznis/orderdesk/internal/distributor/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDistributorService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.Distributor{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  distributorrepo.Provide(distributorrepo.Params{DB: db}),
	})
}

func TestCreateDistributor_NormalizesJurisdiction(t *testing.T) {
	svc := setupDistributorService(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, domain.CreateRequest{
		Code:         "western-pharma",
		Name:         "Western Pharma",
		Jurisdiction: " mh ",
		CreditLimit:  50000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "MH", resp.Jurisdiction)
}

func TestCreateDistributor_Validation(t *testing.T) {
	svc := setupDistributorService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "X", Jurisdiction: "MH"})
	assert.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = svc.Create(ctx, domain.CreateRequest{Code: "x", Jurisdiction: "MH"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Code: "x", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidJurisdiction)
}

func TestCreditPosition(t *testing.T) {
	svc := setupDistributorService(t)
	ctx := context.Background()

	capped, err := svc.Create(ctx, domain.CreateRequest{
		Code:               "capped",
		Name:               "Capped Pharma",
		Jurisdiction:       "MH",
		CreditLimit:        50000,
		OutstandingBalance: 20000,
	})
	assert.NoError(t, err)

	position, err := svc.CreditPosition(ctx, capped.ID)
	assert.NoError(t, err)
	assert.False(t, position.Unlimited)
	assert.Equal(t, int64(30000), position.Available)

	uncapped, err := svc.Create(ctx, domain.CreateRequest{
		Code:         "uncapped",
		Name:         "Uncapped Pharma",
		Jurisdiction: "KA",
	})
	assert.NoError(t, err)

	position, err = svc.CreditPosition(ctx, uncapped.ID)
	assert.NoError(t, err)
	assert.True(t, position.Unlimited)
	assert.Equal(t, int64(0), position.Available)
}
