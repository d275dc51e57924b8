package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestTrip(t *testing.T, mode BillingMode) *Trip {
	t.Helper()
	trip, err := NewTrip(uuid.New(), uuid.New(), "Buenos Aires", "Rosario", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), mode)
	assert.NoError(t, err)
	return trip
}

func TestNewTrip_Validation(t *testing.T) {
	start := time.Now()

	_, err := NewTrip(uuid.New(), uuid.New(), "", "Rosario", start, BillingPerDistance)
	assert.Error(t, err)

	_, err = NewTrip(uuid.New(), uuid.New(), "Buenos Aires", "", start, BillingPerDistance)
	assert.Error(t, err)

	_, err = NewTrip(uuid.Nil, uuid.New(), "Buenos Aires", "Rosario", start, BillingPerDistance)
	assert.Error(t, err)

	_, err = NewTrip(uuid.New(), uuid.New(), "Buenos Aires", "Rosario", start, BillingMode("PER_HOUR"))
	assert.Error(t, err)

	trip, err := NewTrip(uuid.New(), uuid.New(), "Buenos Aires", "Rosario", start, BillingPerWeight)
	assert.NoError(t, err)
	assert.Equal(t, TripStatePending, trip.State)
	assert.False(t, trip.IsFinished())
}

func TestTripLifecycle(t *testing.T) {
	trip := newTestTrip(t, BillingPerDistance)

	assert.NoError(t, trip.Start())
	assert.Equal(t, TripStateInProgress, trip.State)
	assert.Error(t, trip.Start())

	end := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, trip.Finish(end, decimal.NewFromInt(20)))
	assert.True(t, trip.IsFinished())
	assert.Equal(t, end, *trip.EndDate)
	assert.True(t, trip.LoadWeightOnUnload.Equal(decimal.NewFromInt(20)))

	assert.Error(t, trip.Finish(end, decimal.NewFromInt(20)))
}

func TestFinish_AllowedFromPending(t *testing.T) {
	trip := newTestTrip(t, BillingPerDistance)
	assert.NoError(t, trip.Finish(time.Now(), decimal.NewFromInt(18)))
	assert.True(t, trip.IsFinished())
}

func TestHasUsableRate_PerDistance(t *testing.T) {
	trip := newTestTrip(t, BillingPerDistance)
	assert.False(t, trip.HasUsableRate())

	trip.Rate = decimal.NewFromInt(100)
	assert.False(t, trip.HasUsableRate())

	trip.EstimatedKms = decimal.NewFromInt(300)
	assert.True(t, trip.HasUsableRate())
	assert.True(t, trip.BaseAmount().Equal(decimal.NewFromInt(30000)))
}

func TestHasUsableRate_PerWeight(t *testing.T) {
	trip := newTestTrip(t, BillingPerWeight)
	trip.Rate = decimal.NewFromInt(1000)
	trip.EstimatedKms = decimal.NewFromInt(300)
	assert.False(t, trip.HasUsableRate(), "per-weight trips ignore estimated kms")

	trip.LoadWeightOnUnload = decimal.NewFromInt(20)
	assert.True(t, trip.HasUsableRate())
	assert.True(t, trip.BaseAmount().Equal(decimal.NewFromInt(20000)))
}

func TestTripReference(t *testing.T) {
	trip := newTestTrip(t, BillingPerDistance)
	assert.Equal(t, "Trip Buenos Aires - Rosario (05/03/2026)", trip.Reference())

	trip.DocumentNumber = "R-0042"
	assert.Equal(t, "Trip R-0042 Buenos Aires - Rosario", trip.Reference())
}
