package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lifeplan/income-engine/internal/calculation"
	"github.com/lifeplan/income-engine/internal/domain"
)

// PersonPlan bundles one person's projection inputs with an optional
// career selection.
type PersonPlan struct {
	Profile domain.PersonIncomeProfile `yaml:"profile" json:"profile"`
	Career  *calculation.CareerQuery   `yaml:"career,omitempty" json:"career,omitempty"`
}

// PlanInput is the complete plan file: a session identifier plus the self
// and optional partner inputs.
type PlanInput struct {
	SessionID string      `yaml:"session_id" json:"sessionId"`
	Self      *PersonPlan `yaml:"self" json:"self"`
	Partner   *PersonPlan `yaml:"partner,omitempty" json:"partner,omitempty"`
}

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*PlanInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan PlanInput
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// ValidatePlan validates the loaded plan. The engine itself tolerates
// degenerate inputs; validation here enforces the form-level input
// contract (finite, in-range, non-overlapping) at the file boundary.
func (ip *InputParser) ValidatePlan(plan *PlanInput) error {
	if plan.Self == nil {
		return fmt.Errorf("self plan is required")
	}
	if err := ip.validateProfile(&plan.Self.Profile); err != nil {
		return fmt.Errorf("self profile validation failed: %w", err)
	}
	if plan.Partner != nil {
		if err := ip.validateProfile(&plan.Partner.Profile); err != nil {
			return fmt.Errorf("partner profile validation failed: %w", err)
		}
	}
	return nil
}

// validateProfile validates a single person's inputs. A retirement age at
// or below the current age is accepted: it degenerates to an empty
// working phase, not an error.
func (ip *InputParser) validateProfile(p *domain.PersonIncomeProfile) error {
	if p.CurrentAge < 18 || p.CurrentAge > domain.HorizonAge {
		return fmt.Errorf("current age must be between 18 and %d", domain.HorizonAge)
	}
	if p.CurrentIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("current income cannot be negative")
	}
	if p.ChangeMode != "" && p.ChangeMode != domain.ChangeModeStable && p.ChangeMode != domain.ChangeModeFluctuating {
		return fmt.Errorf("change mode must be '%s' or '%s'", domain.ChangeModeStable, domain.ChangeModeFluctuating)
	}
	if p.CurrentStatus != "" && p.CurrentStatus != domain.StatusRetired && p.CurrentStatus != domain.StatusNotRetired {
		return fmt.Errorf("current status must be '%s' or '%s'", domain.StatusRetired, domain.StatusNotRetired)
	}
	if p.ExpectedPensionMonthly != nil && p.ExpectedPensionMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("expected pension cannot be negative")
	}
	if p.RetirementIncomeMonthly.LessThan(decimal.Zero) {
		return fmt.Errorf("retirement income cannot be negative")
	}
	return ip.validatePeriods(p)
}

// validatePeriods enforces the fluctuation-period contract: each range
// must be ordered, lie within [currentAge, retirementAge), and the
// declared ranges must not overlap.
func (ip *InputParser) validatePeriods(p *domain.PersonIncomeProfile) error {
	if len(p.FluctuationPeriods) == 0 {
		return nil
	}

	periods := make([]domain.FluctuationPeriod, len(p.FluctuationPeriods))
	copy(periods, p.FluctuationPeriods)
	sort.Slice(periods, func(i, j int) bool { return periods[i].StartAge < periods[j].StartAge })

	for i, fp := range periods {
		if fp.StartAge > fp.EndAge {
			return fmt.Errorf("fluctuation period %d-%d is reversed", fp.StartAge, fp.EndAge)
		}
		if fp.StartAge < p.CurrentAge || fp.EndAge >= p.RetirementAge {
			return fmt.Errorf("fluctuation period %d-%d lies outside [%d, %d)", fp.StartAge, fp.EndAge, p.CurrentAge, p.RetirementAge)
		}
		if i > 0 && fp.StartAge <= periods[i-1].EndAge {
			return fmt.Errorf("fluctuation periods %d-%d and %d-%d overlap", periods[i-1].StartAge, periods[i-1].EndAge, fp.StartAge, fp.EndAge)
		}
	}
	return nil
}

// CreateExamplePlan builds a sample plan file payload.
func (ip *InputParser) CreateExamplePlan() *PlanInput {
	pension := decimal.NewFromInt(6000)
	return &PlanInput{
		SessionID: "example-session",
		Self: &PersonPlan{
			Profile: domain.PersonIncomeProfile{
				CurrentAge:    32,
				CurrentIncome: decimal.NewFromInt(24),
				RetirementAge: 60,
				ChangeMode:    domain.ChangeModeFluctuating,
				FluctuationPeriods: []domain.FluctuationPeriod{
					{StartAge: 35, EndAge: 44, GrowthRatePercent: decimal.NewFromInt(10)},
					{StartAge: 50, EndAge: 59, GrowthRatePercent: decimal.NewFromInt(-20)},
				},
				ExpectedPensionMonthly: &pension,
			},
			Career: &calculation.CareerQuery{
				Occupation:  "engineer",
				CurrentRank: "engineer",
				Outlook:     calculation.OutlookNormal,
			},
		},
		Partner: &PersonPlan{
			Profile: domain.PersonIncomeProfile{
				CurrentAge:    30,
				CurrentIncome: decimal.NewFromInt(18),
				RetirementAge: 55,
				ChangeMode:    domain.ChangeModeStable,
			},
		},
	}
}
