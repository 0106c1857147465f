package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"client-bff/internal/domain/vehicle"
	xerrors "client-bff/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Query(ctx context.Context, criteria *vehicle.AdvancedSearchCriteria) (*vehicle.PagedResult, error) {
	args := m.Called(ctx, criteria)
	res, _ := args.Get(0).(*vehicle.PagedResult)
	return res, args.Error(1)
}

func advancedCriteria() *vehicle.AdvancedSearchCriteria {
	return &vehicle.AdvancedSearchCriteria{SearchCriteria: *basicCriteria(), PageSize: 2}
}

func TestLiveSearchPathRefines(t *testing.T) {
	offers, pricing := fiveOffers()
	avail := &mockAvailability{}
	avail.On("Available", mock.Anything, "Colombo", mock.Anything, mock.Anything).Return(offers, nil)

	criteria := advancedCriteria()
	criteria.SortDirection = "desc"

	path := NewLiveSearchPath(newTestAggregator(avail, pricing), zap.NewNop())
	res, err := path.Search(context.Background(), criteria)

	require.NoError(t, err)
	assert.Equal(t, PathLive, path.Name())
	assert.True(t, res.Success)
	assert.Equal(t, []string{"car-5", "car-4"}, models(res.Vehicles))
	assert.Equal(t, int64(5), res.TotalElements)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 100.0, res.Vehicles[0].TotalCost)
}

func TestLiveSearchPathPropagatesFailure(t *testing.T) {
	avail := &mockAvailability{}
	avail.On("Available", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]vehicle.Offer{}, nil)

	res, err := NewLiveSearchPath(newTestAggregator(avail, &fakePricing{}), zap.NewNop()).Search(context.Background(), advancedCriteria())

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, vehicle.CodeNoAvailability, res.Code)
	assert.Equal(t, 2, res.PageSize)
}

func TestLiveSearchPathMaxPageSize(t *testing.T) {
	offers, pricing := fiveOffers()
	avail := &mockAvailability{}
	avail.On("Available", mock.Anything, "Colombo", mock.Anything, mock.Anything).Return(offers, nil)

	criteria := advancedCriteria()
	criteria.PageNumber = 1
	criteria.PageSize = math.MaxInt

	res, err := NewLiveSearchPath(newTestAggregator(avail, pricing), zap.NewNop()).Search(context.Background(), criteria)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Vehicles)
	assert.Equal(t, int64(5), res.TotalElements)
}

func TestLiveSearchPathRecoversPanic(t *testing.T) {
	offers, pricing := fiveOffers()
	avail := &mockAvailability{}
	avail.On("Available", mock.Anything, "Colombo", mock.Anything, mock.Anything).Return(offers, nil)

	path := NewLiveSearchPath(newTestAggregator(avail, pricing), zap.NewNop())
	path.refine = func([]vehicle.Offer, *vehicle.AdvancedSearchCriteria) *vehicle.PagedResult {
		panic("bad page")
	}

	res, err := path.Search(context.Background(), advancedCriteria())

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, vehicle.CodeInternalError, res.Code)
	assert.Equal(t, vehicle.MsgInternalError, res.Message)
}

func TestLiveSearchPathValidation(t *testing.T) {
	avail := &mockAvailability{}
	criteria := advancedCriteria()
	criteria.PageSize = 0

	_, err := NewLiveSearchPath(newTestAggregator(avail, &fakePricing{}), zap.NewNop()).Search(context.Background(), criteria)

	v, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "pageSize", v.Field)
	avail.AssertNotCalled(t, "Available", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIndexSearchPath(t *testing.T) {
	ctx := context.Background()
	criteria := advancedCriteria()
	page := vehicle.NewPage([]vehicle.Offer{{Model: "indexed", PricePerDay: 30}}, 0, 2, 1)

	index := &mockIndex{}
	index.On("Query", ctx, criteria).Return(page, nil).Once()

	path := NewIndexSearchPath(index, zap.NewNop())
	res, err := path.Search(ctx, criteria)

	require.NoError(t, err)
	assert.Equal(t, PathIndex, path.Name())
	assert.Same(t, page, res)
	assert.Equal(t, 2, res.Vehicles[0].RentalDays)
	assert.Equal(t, 60.0, res.Vehicles[0].TotalCost)

	index.On("Query", ctx, criteria).Return(nil, errors.New("es: 503")).Once()
	res, err = path.Search(ctx, criteria)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, vehicle.CodeUpstreamUnavailable, res.Code)
	index.AssertExpectations(t)
}

func TestIndexSearchPathRecoversPanic(t *testing.T) {
	index := &mockIndex{}
	index.On("Query", mock.Anything, mock.Anything).Panic("bad hit")

	res, err := NewIndexSearchPath(index, zap.NewNop()).Search(context.Background(), advancedCriteria())

	require.NoError(t, err)
	assert.Equal(t, vehicle.CodeInternalError, res.Code)
}
