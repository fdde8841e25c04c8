package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/lifeplan/income-engine/internal/domain"
)

// CareerQuery selects a career plan when the user picks an occupation and
// rank instead of typing a raw income. DeclaredIncome is annual, in
// ten-thousand units; zero means "not declared".
type CareerQuery struct {
	Occupation     string          `yaml:"occupation" json:"occupation"`
	CurrentRank    string          `yaml:"current_rank" json:"currentRank"`
	DeclaredIncome decimal.Decimal `yaml:"declared_income,omitempty" json:"declaredIncome,omitempty"`
	Outlook        string          `yaml:"outlook" json:"outlook"`
}

// CalculationEngine ties the projector, aggregation and career model
// together into the per-person and household output contracts. Every
// recomputation is a pure function over the current profile; the engine
// holds no per-person state.
type CalculationEngine struct {
	Debug  bool
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// ProjectPerson computes one person's full projection. career may be nil
// when the person typed a raw income instead of picking an occupation.
func (ce *CalculationEngine) ProjectPerson(profile *domain.PersonIncomeProfile, career *CareerQuery) *domain.PersonProjection {
	rows := ProjectIncome(profile)
	total := ProjectedSeriesTotal(rows)

	if ce.Debug && profile != nil {
		ce.Logger.Debugf("projected %d rows for age %d..%d, series total %s, compounding estimate %s",
			len(rows), profile.CurrentAge, domain.HorizonAge, total.StringFixed(2),
			CompoundingEstimateTotal(profile).StringFixed(2))
	}

	projection := &domain.PersonProjection{
		Rows:          rows,
		LifetimeTotal: total,
	}
	if career != nil {
		projection.CareerStages = BuildCareerPlan(career.Occupation, career.CurrentRank, career.DeclaredIncome, career.Outlook)
	}
	return projection
}

// ProjectHousehold computes self and partner projections plus the
// combined lifetime total. Either side may be nil.
func (ce *CalculationEngine) ProjectHousehold(self, partner *domain.PersonIncomeProfile, selfCareer, partnerCareer *CareerQuery) *domain.HouseholdProjection {
	household := &domain.HouseholdProjection{CombinedTotal: decimal.Zero}

	if self != nil {
		household.Self = ce.ProjectPerson(self, selfCareer)
		household.CombinedTotal = HouseholdTotal(household.CombinedTotal, household.Self.LifetimeTotal)
	}
	if partner != nil {
		household.Partner = ce.ProjectPerson(partner, partnerCareer)
		household.CombinedTotal = HouseholdTotal(household.CombinedTotal, household.Partner.LifetimeTotal)
	}
	return household
}
