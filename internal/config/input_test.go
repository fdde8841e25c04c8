package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeplan/income-engine/internal/domain"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writePlanFile(t, `
session_id: test-session
self:
  profile:
    current_age: 32
    current_income: "24.5"
    retirement_age: 60
    change_mode: fluctuating
    fluctuation_periods:
      - start_age: 35
        end_age: 44
        growth_rate_percent: "10"
    expected_pension_monthly: "6000"
  career:
    occupation: engineer
    current_rank: engineer
    outlook: normal
partner:
  profile:
    current_age: 30
    current_income: "18"
    retirement_age: 55
    change_mode: stable
`)

	plan, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "test-session", plan.SessionID)
	require.NotNil(t, plan.Self)
	assert.Equal(t, 32, plan.Self.Profile.CurrentAge)
	assert.True(t, plan.Self.Profile.CurrentIncome.Equal(decimal.NewFromFloat(24.5)))
	require.Len(t, plan.Self.Profile.FluctuationPeriods, 1)
	require.NotNil(t, plan.Self.Profile.ExpectedPensionMonthly)
	assert.True(t, plan.Self.Profile.ExpectedPensionMonthly.Equal(decimal.NewFromInt(6000)))
	require.NotNil(t, plan.Self.Career)
	assert.Equal(t, "engineer", plan.Self.Career.Occupation)
	require.NotNil(t, plan.Partner)
	assert.Equal(t, domain.ChangeModeStable, plan.Partner.Profile.ChangeMode)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileBadYAML(t *testing.T) {
	path := writePlanFile(t, "self: [not a mapping")
	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
}

func validProfile() domain.PersonIncomeProfile {
	return domain.PersonIncomeProfile{
		CurrentAge:    32,
		CurrentIncome: decimal.NewFromInt(24),
		RetirementAge: 60,
		ChangeMode:    domain.ChangeModeStable,
	}
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanInput)
		wantErr string
	}{
		{
			name:   "valid plan",
			mutate: func(p *PlanInput) {},
		},
		{
			name:    "missing self",
			mutate:  func(p *PlanInput) { p.Self = nil },
			wantErr: "self plan is required",
		},
		{
			name:    "current age below 18",
			mutate:  func(p *PlanInput) { p.Self.Profile.CurrentAge = 15 },
			wantErr: "current age",
		},
		{
			name:    "negative income",
			mutate:  func(p *PlanInput) { p.Self.Profile.CurrentIncome = decimal.NewFromInt(-3) },
			wantErr: "current income",
		},
		{
			name:    "unknown change mode",
			mutate:  func(p *PlanInput) { p.Self.Profile.ChangeMode = "volatile" },
			wantErr: "change mode",
		},
		{
			name:    "unknown status",
			mutate:  func(p *PlanInput) { p.Self.Profile.CurrentStatus = "sabbatical" },
			wantErr: "current status",
		},
		{
			name: "retirement at current age accepted",
			mutate: func(p *PlanInput) {
				p.Self.Profile.RetirementAge = p.Self.Profile.CurrentAge
			},
		},
		{
			name: "overlapping fluctuation periods",
			mutate: func(p *PlanInput) {
				p.Self.Profile.ChangeMode = domain.ChangeModeFluctuating
				p.Self.Profile.FluctuationPeriods = []domain.FluctuationPeriod{
					{StartAge: 35, EndAge: 44, GrowthRatePercent: decimal.NewFromInt(10)},
					{StartAge: 40, EndAge: 50, GrowthRatePercent: decimal.NewFromInt(5)},
				}
			},
			wantErr: "overlap",
		},
		{
			name: "period outside working range",
			mutate: func(p *PlanInput) {
				p.Self.Profile.ChangeMode = domain.ChangeModeFluctuating
				p.Self.Profile.FluctuationPeriods = []domain.FluctuationPeriod{
					{StartAge: 58, EndAge: 62, GrowthRatePercent: decimal.NewFromInt(10)},
				}
			},
			wantErr: "outside",
		},
		{
			name: "reversed period",
			mutate: func(p *PlanInput) {
				p.Self.Profile.ChangeMode = domain.ChangeModeFluctuating
				p.Self.Profile.FluctuationPeriods = []domain.FluctuationPeriod{
					{StartAge: 44, EndAge: 35, GrowthRatePercent: decimal.NewFromInt(10)},
				}
			},
			wantErr: "reversed",
		},
		{
			name: "negative partner pension",
			mutate: func(p *PlanInput) {
				bad := decimal.NewFromInt(-100)
				p.Partner = &PersonPlan{Profile: validProfile()}
				p.Partner.Profile.ExpectedPensionMonthly = &bad
			},
			wantErr: "pension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &PlanInput{
				SessionID: "s",
				Self:      &PersonPlan{Profile: validProfile()},
			}
			tt.mutate(plan)

			err := NewInputParser().ValidatePlan(plan)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCreateExamplePlanIsValid(t *testing.T) {
	parser := NewInputParser()
	plan := parser.CreateExamplePlan()
	assert.NoError(t, parser.ValidatePlan(plan))
}
