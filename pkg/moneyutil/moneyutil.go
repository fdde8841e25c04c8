// Package moneyutil converts between the two currency scales the planner
// mixes: annual amounts in ten-thousand (wan) units and monthly amounts
// in yuan.
package moneyutil

import (
	"github.com/shopspring/decimal"
)

var (
	wanFactor    = decimal.NewFromInt(10000)
	monthsInYear = decimal.NewFromInt(12)
	hundred      = decimal.NewFromInt(100)
)

// WanToYuan converts a ten-thousand-unit amount to yuan.
func WanToYuan(wan decimal.Decimal) decimal.Decimal {
	return wan.Mul(wanFactor)
}

// YuanToWan converts a yuan amount to ten-thousand units.
func YuanToWan(yuan decimal.Decimal) decimal.Decimal {
	return yuan.Div(wanFactor)
}

// MonthlyYuanToAnnualWan converts a monthly yuan amount to an annual
// ten-thousand-unit amount.
func MonthlyYuanToAnnualWan(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsInYear).Div(wanFactor)
}

// AnnualWanToMonthlyYuan converts an annual ten-thousand-unit amount to a
// monthly yuan amount.
func AnnualWanToMonthlyYuan(annual decimal.Decimal) decimal.Decimal {
	return annual.Mul(wanFactor).Div(monthsInYear)
}

// PercentToRatio converts a percentage (e.g. 10) to a ratio (0.1).
func PercentToRatio(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// GrowthFactor returns 1 + percent/100.
func GrowthFactor(percent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(PercentToRatio(percent))
}

// RoundDisplay rounds an amount to the 2 decimal places used by display rows.
func RoundDisplay(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
