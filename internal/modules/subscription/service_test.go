package subscription

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"rentnest/internal/domain"
	"rentnest/internal/modules/payment"
	"rentnest/internal/repository"
)

type stubGateway struct {
	url   string
	err   error
	calls int
}

func (g *stubGateway) CreateSession(ctx context.Context, req payment.SessionRequest) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

func setupTestService(t *testing.T) (*Service, *gorm.DB, *stubGateway) {
	t.Helper()
	dsn := fmt.Sprintf("file:subscription_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.CreditPackage{}, &domain.Payment{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	gateway := &stubGateway{url: "https://gateway.test/session/sub"}
	svc := NewService(db, repository.NewPaymentRepository(db), repository.NewUserRepository(db), gateway, nil, "http://localhost:8080")
	svc.loggerf = func(format string, args ...interface{}) {}
	return svc, db, gateway
}

func createBuyer(t *testing.T, db *gorm.DB, credits int64) *domain.User {
	t.Helper()
	u := &domain.User{Email: fmt.Sprintf("buyer-%s@test.local", t.Name()), Role: domain.RoleOwner, Name: "Buyer", Credits: credits}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestPurchaseRejectsUnknownPlan(t *testing.T) {
	svc, db, _ := setupTestService(t)
	buyer := createBuyer(t, db, 0)

	_, err := svc.Purchase(context.Background(), buyer.ID, "platinum")
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestPurchaseCreatesInactivePackageAndUnpaidPayment(t *testing.T) {
	svc, db, _ := setupTestService(t)
	buyer := createBuyer(t, db, 0)

	url, err := svc.Purchase(context.Background(), buyer.ID, "standard")
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.test/session/sub", url)

	var pkg domain.CreditPackage
	require.NoError(t, db.First(&pkg).Error)
	assert.False(t, pkg.Active)
	assert.Equal(t, int64(50), pkg.Credits)
	assert.Equal(t, float64(800), pkg.Amount)

	var pay domain.Payment
	require.NoError(t, db.First(&pay).Error)
	assert.False(t, pay.Paid)
	require.NotNil(t, pay.PackageID)
	assert.Equal(t, pkg.ID, *pay.PackageID)
}

func TestPurchaseGatewayFailureKeepsRows(t *testing.T) {
	svc, db, gateway := setupTestService(t)
	buyer := createBuyer(t, db, 0)
	gateway.err = errors.New("gateway session rejected: maintenance")

	_, err := svc.Purchase(context.Background(), buyer.ID, "basic")
	assert.ErrorIs(t, err, ErrGateway)

	var pay domain.Payment
	require.NoError(t, db.First(&pay).Error)
	assert.False(t, pay.Paid)
	assert.Contains(t, pay.GatewayError, "maintenance")
}

func TestCallbackGrantsCreditsExactlyOnce(t *testing.T) {
	svc, db, _ := setupTestService(t)
	buyer := createBuyer(t, db, 3)

	_, err := svc.Purchase(context.Background(), buyer.ID, "premium")
	require.NoError(t, err)

	var pay domain.Payment
	require.NoError(t, db.First(&pay).Error)

	redirect, err := svc.HandleCallback(context.Background(), "valid", pay.TransactionID, "bKash")
	require.NoError(t, err)
	assert.Equal(t, "/payment/valid", redirect)

	// gateway retry
	_, err = svc.HandleCallback(context.Background(), "valid", pay.TransactionID, "bKash")
	require.NoError(t, err)

	var fresh domain.User
	require.NoError(t, db.First(&fresh, buyer.ID).Error)
	assert.Equal(t, int64(103), fresh.Credits)

	var pkg domain.CreditPackage
	require.NoError(t, db.First(&pkg).Error)
	assert.True(t, pkg.Active)

	require.NoError(t, db.First(&pay).Error)
	assert.True(t, pay.Paid)
	assert.Equal(t, "bKash", pay.PaymentMethod)
}

func TestCallbackFailedStatusChangesNothing(t *testing.T) {
	svc, db, _ := setupTestService(t)
	buyer := createBuyer(t, db, 0)

	_, err := svc.Purchase(context.Background(), buyer.ID, "basic")
	require.NoError(t, err)

	var pay domain.Payment
	require.NoError(t, db.First(&pay).Error)

	redirect, err := svc.HandleCallback(context.Background(), "failed", pay.TransactionID, "")
	require.NoError(t, err)
	assert.Equal(t, "/payment/failed", redirect)

	var fresh domain.User
	require.NoError(t, db.First(&fresh, buyer.ID).Error)
	assert.Zero(t, fresh.Credits)

	var pkg domain.CreditPackage
	require.NoError(t, db.First(&pkg).Error)
	assert.False(t, pkg.Active)
}

func TestCallbackValidation(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.HandleCallback(context.Background(), "ok", "tran", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.HandleCallback(context.Background(), "valid", "missing-tran", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
