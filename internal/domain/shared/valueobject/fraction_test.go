package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewFraction_Bounds(t *testing.T) {
	_, err := NewFraction(decimal.NewFromFloat(-0.01))
	assert.Error(t, err)

	_, err = NewFraction(decimal.NewFromFloat(1.01))
	assert.Error(t, err)

	for _, v := range []float64{0, 0.15, 1} {
		f, err := NewFraction(decimal.NewFromFloat(v))
		assert.NoError(t, err)
		assert.True(t, f.Value().Equal(decimal.NewFromFloat(v)))
	}
}

func TestNewFractionFromPercent(t *testing.T) {
	f, err := NewFractionFromPercent(decimal.NewFromInt(15))
	assert.NoError(t, err)
	assert.True(t, f.Value().Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, f.Percent().Equal(decimal.NewFromInt(15)))

	_, err = NewFractionFromPercent(decimal.NewFromInt(101))
	assert.Error(t, err)
}

func TestFraction_ApplyTo(t *testing.T) {
	f := MustFraction(decimal.NewFromFloat(0.15))
	got := f.ApplyTo(decimal.NewFromInt(20000))
	assert.True(t, got.Equal(decimal.NewFromInt(3000)))
}

func TestMustFraction_PanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() {
		MustFraction(decimal.NewFromInt(2))
	})
}

func TestZeroFraction(t *testing.T) {
	f := ZeroFraction()
	assert.True(t, f.IsZero())
	assert.True(t, f.ApplyTo(decimal.NewFromInt(1000)).IsZero())
}

func TestFraction_JSONRoundTrip(t *testing.T) {
	f := MustFraction(decimal.NewFromFloat(0.25))
	data, err := json.Marshal(f)
	assert.NoError(t, err)

	var decoded Fraction
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Value().Equal(f.Value()))

	var invalid Fraction
	assert.Error(t, json.Unmarshal([]byte(`"1.5"`), &invalid))
}
