package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// ChangeMode describes how a person's working income evolves over time.
const (
	ChangeModeStable      = "stable"
	ChangeModeFluctuating = "fluctuating"
)

// CurrentStatus values. An empty status is derived from age (>= 60 means retired).
const (
	StatusRetired    = "retired"
	StatusNotRetired = "not-retired"
)

// HorizonAge is the last age covered by every projection, inclusive.
const HorizonAge = 85

// StatusDerivationAge is the age at or above which an unset status is
// treated as retired.
const StatusDerivationAge = 60

// DefaultPensionRatio is the share of monthly-equivalent current income
// used as the expected pension when none is declared.
var DefaultPensionRatio = decimal.NewFromFloat(0.3)

// FluctuationPeriod is a user-declared age sub-range with its own growth
// rate override. Ranges are inclusive on both ends and must not overlap;
// they must lie within [currentAge, retirementAge).
type FluctuationPeriod struct {
	StartAge          int             `yaml:"start_age" json:"startAge"`
	EndAge            int             `yaml:"end_age" json:"endAge"`
	GrowthRatePercent decimal.Decimal `yaml:"growth_rate_percent" json:"growthRatePercent"`
}

// Contains reports whether the period covers the given age.
func (fp FluctuationPeriod) Contains(age int) bool {
	return age >= fp.StartAge && age <= fp.EndAge
}

// PersonIncomeProfile holds one person's projection inputs.
//
// CurrentIncome is annual, in ten-thousand (wan) units. ExpectedPensionMonthly
// and RetirementIncomeMonthly are in yuan per month. A nil
// ExpectedPensionMonthly means "unset": the projection falls back to 30% of
// the monthly-equivalent current income. An explicit zero suppresses the
// retirement phase entirely.
type PersonIncomeProfile struct {
	CurrentAge              int                 `yaml:"current_age" json:"currentAge"`
	CurrentIncome           decimal.Decimal     `yaml:"current_income" json:"currentIncome"`
	RetirementAge           int                 `yaml:"retirement_age" json:"retirementAge"`
	ChangeMode              string              `yaml:"change_mode" json:"changeMode"`
	FluctuationPeriods      []FluctuationPeriod `yaml:"fluctuation_periods,omitempty" json:"fluctuationPeriods,omitempty"`
	ExpectedPensionMonthly  *decimal.Decimal    `yaml:"expected_pension_monthly,omitempty" json:"expectedPensionMonthly,omitempty"`
	CurrentStatus           string              `yaml:"current_status,omitempty" json:"currentStatus,omitempty"`
	RetirementIncomeMonthly decimal.Decimal     `yaml:"retirement_income_monthly,omitempty" json:"retirementIncomeMonthly,omitempty"`
}

// NewPersonIncomeProfile returns a profile populated with planning-session
// defaults: a 30-year-old earner in stable mode retiring at 60.
func NewPersonIncomeProfile() *PersonIncomeProfile {
	return &PersonIncomeProfile{
		CurrentAge:    30,
		CurrentIncome: decimal.Zero,
		RetirementAge: 60,
		ChangeMode:    ChangeModeStable,
	}
}

// IsRetired resolves the person's status. An explicit status wins;
// otherwise the status derives from the current age.
func (p *PersonIncomeProfile) IsRetired() bool {
	switch p.CurrentStatus {
	case StatusRetired:
		return true
	case StatusNotRetired:
		return false
	}
	return p.CurrentAge >= StatusDerivationAge
}

// PeriodFor returns the first fluctuation period containing the age.
// Declared periods must not overlap, so at most one should match; when
// malformed input overlaps anyway, declaration order decides.
func (p *PersonIncomeProfile) PeriodFor(age int) (FluctuationPeriod, bool) {
	for _, fp := range p.FluctuationPeriods {
		if fp.Contains(age) {
			return fp, true
		}
	}
	return FluctuationPeriod{}, false
}

// ClearForRetirement drops the fields that no longer apply once the
// person's status flips to retired.
func (p *PersonIncomeProfile) ClearForRetirement() {
	p.CurrentStatus = StatusRetired
	p.ChangeMode = ChangeModeStable
	p.FluctuationPeriods = nil
	p.ExpectedPensionMonthly = nil
}

// IncomeYearRow is one projected year of the series. Income is annual, in
// ten-thousand units, rounded to 2 decimal places for display.
type IncomeYearRow struct {
	Age               int             `json:"age"`
	Income            decimal.Decimal `json:"income"`
	GrowthRatePercent decimal.Decimal `json:"growthRatePercent"`
	IsRetired         bool            `json:"isRetired"`
}

// CareerStage is one of the five canonical steps of a generated
// occupational trajectory.
type CareerStage struct {
	StageName     string          `json:"stageName"`
	Position      string          `json:"position"`
	Description   string          `json:"description"`
	AgeRange      string          `json:"ageRange"`
	DurationYears int             `json:"durationYears"`
	YearlyIncome  decimal.Decimal `json:"yearlyIncome"`
}

// PersonProjection is the per-person output contract consumed by the
// summary and advisory screens.
type PersonProjection struct {
	Rows          []IncomeYearRow `json:"rows"`
	LifetimeTotal decimal.Decimal `json:"lifetimeTotal"`
	CareerStages  []CareerStage   `json:"careerStages,omitempty"`
}

// HouseholdProjection combines the self and partner projections.
type HouseholdProjection struct {
	Self          *PersonProjection `json:"self,omitempty"`
	Partner       *PersonProjection `json:"partner,omitempty"`
	CombinedTotal decimal.Decimal   `json:"combinedTotal"`
}

// SanitizeFloat coerces non-finite float input to 0 so NaN/Infinity never
// reaches a projection row.
func SanitizeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DecimalFromFloat converts a boundary float into a decimal after
// non-finite coercion.
func DecimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(SanitizeFloat(v))
}
