package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifeplan/income-engine/internal/domain"
	"github.com/lifeplan/income-engine/pkg/moneyutil"
)

// ProjectedSeriesTotal sums a materialized series into a lifetime total.
// Each row already represents one year, so this is a plain sum of the
// display-rounded row incomes, rounded once at the end.
func ProjectedSeriesTotal(rows []domain.IncomeYearRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Income)
	}
	return moneyutil.RoundDisplay(total)
}

// CompoundingEstimateTotal recomputes a lifetime total directly from a
// profile without materializing rows. Unlike ProjectIncome's flat
// per-period adjustment, income inside a fluctuation period compounds by
// years elapsed since the period start, with the first period year
// already carrying one growth application:
//
//	income(age) = currentIncome * (1 + rate/100)^(age - periodStart + 1)
//
// The two totals are allowed to disagree; which formula is correct is an
// unresolved product question, so call sites must choose explicitly.
// Accumulation is unrounded, rounded once at the end.
func CompoundingEstimateTotal(profile *domain.PersonIncomeProfile) decimal.Decimal {
	if profile == nil {
		return decimal.Zero
	}

	total := decimal.Zero

	if profile.IsRetired() {
		monthly := profile.RetirementIncomeMonthly
		if monthly.IsNegative() {
			monthly = decimal.Zero
		}
		annual := moneyutil.MonthlyYuanToAnnualWan(monthly)
		for age := profile.CurrentAge; age <= domain.HorizonAge; age++ {
			total = total.Add(annual)
		}
		return moneyutil.RoundDisplay(total)
	}

	base := profile.CurrentIncome
	for age := profile.CurrentAge; age < profile.RetirementAge && age <= domain.HorizonAge; age++ {
		income := base
		if profile.ChangeMode == domain.ChangeModeFluctuating {
			if period, ok := profile.PeriodFor(age); ok {
				years := int64(age - period.StartAge + 1)
				income = base.Mul(moneyutil.GrowthFactor(period.GrowthRatePercent).Pow(decimal.NewFromInt(years)))
			}
		}
		total = total.Add(income)
	}

	pension := monthlyPension(profile)
	if pension.GreaterThan(decimal.Zero) {
		annual := moneyutil.MonthlyYuanToAnnualWan(pension)
		start := profile.RetirementAge
		if start < profile.CurrentAge {
			start = profile.CurrentAge
		}
		for age := start; age <= domain.HorizonAge; age++ {
			total = total.Add(annual)
		}
	}

	return moneyutil.RoundDisplay(total)
}

// CompoundingIncomeAt returns the compounding-path income for a single
// working-phase age. Exposed so the debt-pressure and wealth-type screens
// can show the per-year estimate the compounding total is built from.
func CompoundingIncomeAt(profile *domain.PersonIncomeProfile, age int) decimal.Decimal {
	if profile == nil {
		return decimal.Zero
	}
	income := profile.CurrentIncome
	if profile.ChangeMode == domain.ChangeModeFluctuating {
		if period, ok := profile.PeriodFor(age); ok {
			years := int64(age - period.StartAge + 1)
			income = income.Mul(moneyutil.GrowthFactor(period.GrowthRatePercent).Pow(decimal.NewFromInt(years)))
		}
	}
	return moneyutil.RoundDisplay(income)
}

// HouseholdTotal combines two individuals' lifetime totals.
func HouseholdTotal(self, partner decimal.Decimal) decimal.Decimal {
	return self.Add(partner)
}
