package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rentnest/internal/domain"
)

// Mock repositories
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	args := m.Called(ctx, req)
	if req != nil {
		req.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) GetByTenantAndProperty(ctx context.Context, tenantID, propertyID int64) (*domain.BookingRequest, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.BookingRequest, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.BookingRequest, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingRequestStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPropertyReader struct {
	mock.Mock
}

func (m *MockPropertyReader) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestService(requests *MockRequestRepository, properties *MockPropertyReader, users *MockUserReader) *Service {
	svc := NewService(requests, properties, users, nil)
	svc.loggerf = func(format string, args ...interface{}) {}
	return svc
}

func availableProperty(ownerID int64) *domain.Property {
	return &domain.Property{
		ID:      42,
		OwnerID: ownerID,
		Title:   "Lakeview Flat",
		City:    "Dhaka",
		Price:   20000,
		Status:  domain.PropertyAvailable,
	}
}

func TestCreateRequest_Success(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	properties.On("GetByID", mock.Anything, int64(42)).Return(availableProperty(7), nil)
	requests.On("GetByTenantAndProperty", mock.Anything, int64(3), int64(42)).Return(nil, gorm.ErrRecordNotFound)
	requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.BookingRequest")).Return(nil)

	req, err := svc.CreateRequest(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, int64(7), req.OwnerID)
	requests.AssertExpectations(t)
}

func TestCreateRequest_DuplicateBlocks(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	properties.On("GetByID", mock.Anything, int64(42)).Return(availableProperty(7), nil)
	requests.On("GetByTenantAndProperty", mock.Anything, int64(3), int64(42)).
		Return(&domain.BookingRequest{ID: 1, Status: domain.RequestPending}, nil)

	_, err := svc.CreateRequest(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRequest_DeclinedBlocksForever(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	properties.On("GetByID", mock.Anything, int64(42)).Return(availableProperty(7), nil)
	requests.On("GetByTenantAndProperty", mock.Anything, int64(3), int64(42)).
		Return(&domain.BookingRequest{ID: 1, Status: domain.RequestRejected}, nil)

	_, err := svc.CreateRequest(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrAlreadyDeclined)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRequest_RaceFallsBackToUniqueIndex(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	properties.On("GetByID", mock.Anything, int64(42)).Return(availableProperty(7), nil)
	requests.On("GetByTenantAndProperty", mock.Anything, int64(3), int64(42)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	requests.On("Create", mock.Anything, mock.Anything).
		Return(errors.New(`duplicate key value violates unique constraint "idx_request_tenant_property"`))
	requests.On("GetByTenantAndProperty", mock.Anything, int64(3), int64(42)).
		Return(&domain.BookingRequest{ID: 1, Status: domain.RequestPending}, nil)

	_, err := svc.CreateRequest(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestCreateRequest_PropertyMissing(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	properties.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateRequest(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRequest_OwnProperty(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	properties.On("GetByID", mock.Anything, int64(42)).Return(availableProperty(3), nil)

	_, err := svc.CreateRequest(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelRequest_Matrix(t *testing.T) {
	cases := []struct {
		name     string
		tenantID int64
		stored   *domain.BookingRequest
		getErr   error
		want     error
	}{
		{
			name:     "pending own request is cancellable",
			tenantID: 3,
			stored:   &domain.BookingRequest{ID: 5, TenantID: 3, Status: domain.RequestPending},
		},
		{
			name:     "missing request",
			tenantID: 3,
			getErr:   gorm.ErrRecordNotFound,
			want:     ErrNotFound,
		},
		{
			name:     "someone else's request",
			tenantID: 3,
			stored:   &domain.BookingRequest{ID: 5, TenantID: 8, Status: domain.RequestPending},
			want:     ErrForbidden,
		},
		{
			name:     "already approved",
			tenantID: 3,
			stored:   &domain.BookingRequest{ID: 5, TenantID: 3, Status: domain.RequestApproved},
			want:     ErrInvalidState,
		},
		{
			name:     "already rejected",
			tenantID: 3,
			stored:   &domain.BookingRequest{ID: 5, TenantID: 3, Status: domain.RequestRejected},
			want:     ErrInvalidState,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requests := new(MockRequestRepository)
			properties := new(MockPropertyReader)
			users := new(MockUserReader)
			svc := newTestService(requests, properties, users)

			if tc.getErr != nil {
				requests.On("GetByID", mock.Anything, int64(5)).Return(nil, tc.getErr)
			} else {
				requests.On("GetByID", mock.Anything, int64(5)).Return(tc.stored, nil)
			}
			if tc.want == nil {
				requests.On("Delete", mock.Anything, int64(5)).Return(nil)
			}

			err := svc.CancelRequest(context.Background(), tc.tenantID, 5)
			if tc.want == nil {
				assert.NoError(t, err)
				requests.AssertCalled(t, "Delete", mock.Anything, int64(5))
			} else {
				assert.ErrorIs(t, err, tc.want)
				requests.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDecide_OneShot(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	pending := &domain.BookingRequest{ID: 5, TenantID: 3, OwnerID: 7, PropertyID: 42, Status: domain.RequestPending}
	requests.On("GetByID", mock.Anything, int64(5)).Return(pending, nil).Once()
	requests.On("UpdateStatusIfPending", mock.Anything, int64(5), domain.RequestApproved).Return(true, nil)

	req, err := svc.Decide(context.Background(), 7, 5, domain.RequestApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, req.Status)

	decided := &domain.BookingRequest{ID: 5, TenantID: 3, OwnerID: 7, PropertyID: 42, Status: domain.RequestApproved}
	requests.On("GetByID", mock.Anything, int64(5)).Return(decided, nil)

	_, err = svc.Decide(context.Background(), 7, 5, domain.RequestRejected)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecide_GuardLosesRace(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	pending := &domain.BookingRequest{ID: 5, TenantID: 3, OwnerID: 7, PropertyID: 42, Status: domain.RequestPending}
	requests.On("GetByID", mock.Anything, int64(5)).Return(pending, nil)
	requests.On("UpdateStatusIfPending", mock.Anything, int64(5), domain.RequestRejected).Return(false, nil)

	_, err := svc.Decide(context.Background(), 7, 5, domain.RequestRejected)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecide_WrongOwner(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	pending := &domain.BookingRequest{ID: 5, TenantID: 3, OwnerID: 7, PropertyID: 42, Status: domain.RequestPending}
	requests.On("GetByID", mock.Anything, int64(5)).Return(pending, nil)

	_, err := svc.Decide(context.Background(), 8, 5, domain.RequestApproved)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDecide_InvalidDecision(t *testing.T) {
	requests := new(MockRequestRepository)
	properties := new(MockPropertyReader)
	users := new(MockUserReader)
	svc := newTestService(requests, properties, users)

	_, err := svc.Decide(context.Background(), 7, 5, domain.BookingRequestStatus("maybe"))
	assert.ErrorIs(t, err, ErrValidation)
}
