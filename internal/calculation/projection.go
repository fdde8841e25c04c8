package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifeplan/income-engine/internal/domain"
	"github.com/lifeplan/income-engine/pkg/moneyutil"
)

// ProjectIncome produces the year-indexed income series for a profile,
// from the current age through the horizon (age 85).
//
// Working-phase rows cover exactly [currentAge, retirementAge). Inside a
// fluctuation period the declared rate is applied as a flat adjustment to
// the base income, uniformly for every year of the period; it does not
// compound year over year. CompoundingEstimateTotal implements the
// competing compounding interpretation, and the two are deliberately kept
// as distinct behaviors pending a product decision.
//
// Retirement-phase rows cover [retirementAge, 85] inclusive and carry the
// annualized pension; they are emitted only when the resolved monthly
// pension is positive. An already-retired profile skips the working phase
// and emits its retirement income from the current age instead.
//
// Row incomes are rounded to 2 decimal places when the row is
// materialized; totals over rows sum these display values.
func ProjectIncome(profile *domain.PersonIncomeProfile) []domain.IncomeYearRow {
	if profile == nil {
		return nil
	}

	if profile.IsRetired() {
		return retiredSeries(profile)
	}

	rows := make([]domain.IncomeYearRow, 0, domain.HorizonAge-profile.CurrentAge+1)

	// Working phase. retirementAge <= currentAge degenerates to zero
	// rows; callers treat an empty series as "no projection available".
	base := profile.CurrentIncome
	for age := profile.CurrentAge; age < profile.RetirementAge && age <= domain.HorizonAge; age++ {
		income := base
		rate := decimal.Zero
		if profile.ChangeMode == domain.ChangeModeFluctuating {
			if period, ok := profile.PeriodFor(age); ok {
				rate = period.GrowthRatePercent
				income = base.Mul(moneyutil.GrowthFactor(rate))
			}
		}
		rows = append(rows, domain.IncomeYearRow{
			Age:               age,
			Income:            moneyutil.RoundDisplay(income),
			GrowthRatePercent: rate,
			IsRetired:         false,
		})
	}

	// Retirement phase, pension-funded.
	pension := monthlyPension(profile)
	if pension.GreaterThan(decimal.Zero) {
		annual := moneyutil.RoundDisplay(moneyutil.MonthlyYuanToAnnualWan(pension))
		start := profile.RetirementAge
		if start < profile.CurrentAge {
			start = profile.CurrentAge
		}
		for age := start; age <= domain.HorizonAge; age++ {
			rows = append(rows, domain.IncomeYearRow{
				Age:               age,
				Income:            annual,
				GrowthRatePercent: decimal.Zero,
				IsRetired:         true,
			})
		}
	}

	return rows
}

// retiredSeries emits the pension-only series for a person who is already
// retired. An unset or negative retirement income yields zero-income
// rows, not an error.
func retiredSeries(profile *domain.PersonIncomeProfile) []domain.IncomeYearRow {
	monthly := profile.RetirementIncomeMonthly
	if monthly.IsNegative() {
		monthly = decimal.Zero
	}
	annual := moneyutil.RoundDisplay(moneyutil.MonthlyYuanToAnnualWan(monthly))

	rows := make([]domain.IncomeYearRow, 0, domain.HorizonAge-profile.CurrentAge+1)
	for age := profile.CurrentAge; age <= domain.HorizonAge; age++ {
		rows = append(rows, domain.IncomeYearRow{
			Age:               age,
			Income:            annual,
			GrowthRatePercent: decimal.Zero,
			IsRetired:         true,
		})
	}
	return rows
}

// monthlyPension resolves the retirement-phase monthly pension in yuan.
// nil means unset and falls back to 30% of the monthly-equivalent current
// income; an explicit zero (or negative) value disables the phase.
func monthlyPension(profile *domain.PersonIncomeProfile) decimal.Decimal {
	if profile.ExpectedPensionMonthly != nil {
		return *profile.ExpectedPensionMonthly
	}
	monthly := moneyutil.AnnualWanToMonthlyYuan(profile.CurrentIncome)
	return monthly.Mul(domain.DefaultPensionRatio)
}
