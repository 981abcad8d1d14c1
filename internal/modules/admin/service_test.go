package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"rentnest/internal/domain"
	"rentnest/internal/repository"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:admin_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Property{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	svc := NewService(repository.NewPropertyRepository(db), nil)
	svc.loggerf = func(format string, args ...interface{}) {}
	return svc, db
}

func createPending(t *testing.T, db *gorm.DB) *domain.Property {
	t.Helper()
	owner := &domain.User{Email: fmt.Sprintf("owner-%s@test.local", t.Name()), Role: domain.RoleOwner, Name: "Owner"}
	require.NoError(t, db.Create(owner).Error)
	p := &domain.Property{OwnerID: owner.ID, Title: "Flat", City: "Dhaka", Price: 15000, Status: domain.PropertyPending}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestReviewApprovesPendingOnce(t *testing.T) {
	svc, db := setupTestService(t)
	p := createPending(t, db)

	reviewed, err := svc.Review(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyAvailable, reviewed.Status)

	_, err = svc.Review(context.Background(), p.ID, false)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestReviewReject(t *testing.T) {
	svc, db := setupTestService(t)
	p := createPending(t, db)

	reviewed, err := svc.Review(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyRejected, reviewed.Status)
}

func TestReviewMissingProperty(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Review(context.Background(), 12345, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPendingOnlyReturnsPending(t *testing.T) {
	svc, db := setupTestService(t)
	p := createPending(t, db)

	approved := &domain.Property{OwnerID: p.OwnerID, Title: "Other", City: "Dhaka", Price: 9000, Status: domain.PropertyAvailable}
	require.NoError(t, db.Create(approved).Error)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, p.ID, pending[0].ID)
}
