package payroll

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewOtherItem_Validation(t *testing.T) {
	driverID := uuid.New()
	periodID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewOtherItem(uuid.Nil, periodID, OtherItemBonus, decimal.NewFromInt(100), "bonus", date)
	assert.Error(t, err)

	_, err = NewOtherItem(driverID, uuid.Nil, OtherItemBonus, decimal.NewFromInt(100), "bonus", date)
	assert.Error(t, err)

	_, err = NewOtherItem(driverID, periodID, OtherItemType("DISCOUNT"), decimal.NewFromInt(100), "bonus", date)
	assert.Error(t, err)

	_, err = NewOtherItem(driverID, periodID, OtherItemBonus, decimal.NewFromInt(100), "", date)
	assert.Error(t, err)

	_, err = NewOtherItem(driverID, periodID, OtherItemBonus, decimal.Zero, "bonus", date)
	assert.Error(t, err)

	item, err := NewOtherItem(driverID, periodID, OtherItemBonus, decimal.NewFromInt(100), "quarterly bonus", date)
	assert.NoError(t, err)
	assert.Equal(t, driverID, item.DriverID)
	assert.Equal(t, periodID, item.PeriodID)
}

func TestNormalizedAmount_SignRules(t *testing.T) {
	tests := []struct {
		name     string
		itemType OtherItemType
		entered  decimal.Decimal
		want     decimal.Decimal
	}{
		{"bonus entered positive", OtherItemBonus, decimal.NewFromInt(300), decimal.NewFromInt(300)},
		{"bonus entered negative is forced positive", OtherItemBonus, decimal.NewFromInt(-300), decimal.NewFromInt(300)},
		{"extra charge entered positive is forced negative", OtherItemExtraCharge, decimal.NewFromInt(150), decimal.NewFromInt(-150)},
		{"extra charge entered negative stays negative", OtherItemExtraCharge, decimal.NewFromInt(-150), decimal.NewFromInt(-150)},
		{"fine without trip is forced negative", OtherItemFineWithoutTrip, decimal.NewFromInt(200), decimal.NewFromInt(-200)},
		{"adjustment keeps positive sign", OtherItemAdjustment, decimal.NewFromInt(80), decimal.NewFromInt(80)},
		{"adjustment keeps negative sign", OtherItemAdjustment, decimal.NewFromInt(-80), decimal.NewFromInt(-80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewOtherItem(uuid.New(), uuid.New(), tt.itemType, tt.entered, "item", time.Now())
			assert.NoError(t, err)
			assert.True(t, item.NormalizedAmount().Equal(tt.want),
				"got %s, want %s", item.NormalizedAmount(), tt.want)
		})
	}
}
