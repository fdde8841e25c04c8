package moneyutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWanYuanConversions(t *testing.T) {
	assert.True(t, WanToYuan(decimal.NewFromInt(20)).Equal(decimal.NewFromInt(200000)))
	assert.True(t, YuanToWan(decimal.NewFromInt(200000)).Equal(decimal.NewFromInt(20)))

	// Round-trip preserves the value.
	original := decimal.NewFromFloat(12.34)
	assert.True(t, YuanToWan(WanToYuan(original)).Equal(original))
}

func TestMonthlyAnnualConversions(t *testing.T) {
	// 5000 yuan/month is 6 wan/year.
	annual := MonthlyYuanToAnnualWan(decimal.NewFromInt(5000))
	assert.True(t, annual.Equal(decimal.NewFromInt(6)), "got %s", annual)

	monthly := AnnualWanToMonthlyYuan(decimal.NewFromInt(6))
	assert.True(t, monthly.Equal(decimal.NewFromInt(5000)), "got %s", monthly)
}

func TestPercentToRatio(t *testing.T) {
	assert.True(t, PercentToRatio(decimal.NewFromInt(10)).Equal(decimal.NewFromFloat(0.1)))
	assert.True(t, PercentToRatio(decimal.NewFromInt(-5)).Equal(decimal.NewFromFloat(-0.05)))
}

func TestGrowthFactor(t *testing.T) {
	assert.True(t, GrowthFactor(decimal.NewFromInt(10)).Equal(decimal.NewFromFloat(1.1)))
	assert.True(t, GrowthFactor(decimal.Zero).Equal(decimal.NewFromInt(1)))
	assert.True(t, GrowthFactor(decimal.NewFromInt(-20)).Equal(decimal.NewFromFloat(0.8)))
}

func TestRoundDisplay(t *testing.T) {
	assert.Equal(t, "26.62", RoundDisplay(decimal.NewFromFloat(26.6200001)).StringFixed(2))
	assert.Equal(t, "20.00", RoundDisplay(decimal.NewFromInt(20)).StringFixed(2))
}

func TestMax(t *testing.T) {
	a := decimal.NewFromInt(3)
	b := decimal.NewFromInt(7)
	assert.True(t, Max(a, b).Equal(b))
	assert.True(t, Max(b, a).Equal(b))
	assert.True(t, Max(a, a).Equal(a))
}
