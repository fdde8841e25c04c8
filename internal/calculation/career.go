package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lifeplan/income-engine/internal/domain"
	"github.com/lifeplan/income-engine/pkg/moneyutil"
)

// Career outlook selectors.
const (
	OutlookNormal    = "normal"
	OutlookStagnant  = "stagnant"
	OutlookDeclining = "declining"
)

// genericBaseIncome is the fallback base annual income in yuan for
// occupations missing from the system table.
var genericBaseIncome = decimal.NewFromInt(100000)

// genericLadder is the fallback promotion path for unknown occupations.
var genericLadder = []string{"junior", "mid", "senior", "expert", "principal"}

// systemBaseIncome maps an occupation to its base annual income in yuan.
var systemBaseIncome = map[string]decimal.Decimal{
	"engineer":      decimal.NewFromInt(180000),
	"teacher":       decimal.NewFromInt(110000),
	"doctor":        decimal.NewFromInt(200000),
	"finance":       decimal.NewFromInt(160000),
	"civil-servant": decimal.NewFromInt(120000),
	"sales":         decimal.NewFromInt(130000),
}

// careerLadders maps an occupation to its ordered promotion path.
var careerLadders = map[string][]string{
	"engineer":      {"junior engineer", "engineer", "senior engineer", "staff engineer", "chief engineer"},
	"teacher":       {"teaching assistant", "lecturer", "senior lecturer", "associate professor", "professor"},
	"doctor":        {"resident", "attending", "associate chief physician", "chief physician", "department head"},
	"finance":       {"analyst", "associate", "manager", "director", "partner"},
	"civil-servant": {"clerk", "section member", "deputy section chief", "section chief", "division chief"},
	"sales":         {"sales rep", "senior rep", "team lead", "regional manager", "sales director"},
}

// rankMultipliers maps occupation -> rank -> compensation multiplier over
// the occupation's base income. Missing ranks resolve to 1.0.
var rankMultipliers = map[string]map[string]decimal.Decimal{
	"engineer": {
		"junior engineer": decimal.NewFromFloat(0.7),
		"engineer":        decimal.NewFromFloat(1.0),
		"senior engineer": decimal.NewFromFloat(1.4),
		"staff engineer":  decimal.NewFromFloat(1.9),
		"chief engineer":  decimal.NewFromFloat(2.5),
	},
	"teacher": {
		"teaching assistant":  decimal.NewFromFloat(0.8),
		"lecturer":            decimal.NewFromFloat(1.0),
		"senior lecturer":     decimal.NewFromFloat(1.3),
		"associate professor": decimal.NewFromFloat(1.6),
		"professor":           decimal.NewFromFloat(2.0),
	},
	"doctor": {
		"resident":                  decimal.NewFromFloat(0.6),
		"attending":                 decimal.NewFromFloat(1.0),
		"associate chief physician": decimal.NewFromFloat(1.5),
		"chief physician":           decimal.NewFromFloat(2.0),
		"department head":           decimal.NewFromFloat(2.6),
	},
	"finance": {
		"analyst":   decimal.NewFromFloat(0.7),
		"associate": decimal.NewFromFloat(1.0),
		"manager":   decimal.NewFromFloat(1.5),
		"director":  decimal.NewFromFloat(2.2),
		"partner":   decimal.NewFromFloat(3.0),
	},
	"civil-servant": {
		"clerk":                decimal.NewFromFloat(0.8),
		"section member":       decimal.NewFromFloat(1.0),
		"deputy section chief": decimal.NewFromFloat(1.2),
		"section chief":        decimal.NewFromFloat(1.5),
		"division chief":       decimal.NewFromFloat(1.9),
	},
	"sales": {
		"sales rep":        decimal.NewFromFloat(0.7),
		"senior rep":       decimal.NewFromFloat(1.0),
		"team lead":        decimal.NewFromFloat(1.4),
		"regional manager": decimal.NewFromFloat(1.9),
		"sales director":   decimal.NewFromFloat(2.5),
	},
}

// outlookSchedules holds the five multiplicative stage offsets per outlook.
var outlookSchedules = map[string][5]decimal.Decimal{
	OutlookNormal: {
		decimal.Zero,
		decimal.NewFromFloat(0.15),
		decimal.NewFromFloat(0.25),
		decimal.NewFromFloat(0.35),
		decimal.NewFromFloat(0.45),
	},
	OutlookStagnant: {
		decimal.Zero,
		decimal.NewFromFloat(0.05),
		decimal.NewFromFloat(0.08),
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.12),
	},
	OutlookDeclining: {
		decimal.Zero,
		decimal.NewFromFloat(-0.05),
		decimal.NewFromFloat(-0.10),
		decimal.NewFromFloat(-0.15),
		decimal.NewFromFloat(-0.20),
	},
}

// Canonical narrative scaffold for the five stages. The ages are a fixed
// storytelling frame, not anchored to the person's actual current age.
var (
	stageStartAges = [5]int{30, 34, 38, 43, 49}
	stageDurations = [5]int{3, 4, 5, 6, 7}
	stageNames     = [5]string{"Foundation", "Growth", "Acceleration", "Peak", "Consolidation"}
	stageBlurbs    = [5]string{
		"Build core skills and professional footing",
		"Take on broader scope and first leadership duties",
		"Convert experience into rapid advancement",
		"Operate at the top of the promotion ladder",
		"Consolidate position and mentor the next generation",
	}
)

// BuildCareerPlan produces the 5-stage forward plan for an occupation and
// current rank. declaredIncome is the user-typed annual income in
// ten-thousand units; when positive it overrides the system base.
//
// Unknown occupations, ranks and outlooks never fail: they resolve to the
// generic base (100,000 yuan), multiplier 1.0, the generic 5-rung ladder
// and the normal-growth schedule, so every input combination yields a
// plausible plan.
func BuildCareerPlan(occupation, currentRank string, declaredIncome decimal.Decimal, outlook string) []domain.CareerStage {
	base := resolveBaseIncome(occupation, currentRank, declaredIncome)
	schedule, ok := outlookSchedules[outlook]
	if !ok {
		schedule = outlookSchedules[OutlookNormal]
	}
	ladder, ok := careerLadders[occupation]
	if !ok {
		ladder = genericLadder
	}
	rankIndex := indexOf(ladder, currentRank)

	stages := make([]domain.CareerStage, 5)
	for i := 0; i < 5; i++ {
		pos := rankIndex + i
		if pos >= len(ladder) {
			pos = len(ladder) - 1
		}
		income := base.Mul(decimal.NewFromInt(1).Add(schedule[i])).Round(0)
		stages[i] = domain.CareerStage{
			StageName:     stageNames[i],
			Position:      ladder[pos],
			Description:   stageBlurbs[i],
			AgeRange:      fmt.Sprintf("%d-%d", stageStartAges[i], stageStartAges[i]+stageDurations[i]),
			DurationYears: stageDurations[i],
			YearlyIncome:  moneyutil.Max(decimal.Zero, income),
		}
	}
	return stages
}

// resolveBaseIncome picks the base annual income in yuan: a positive
// declared income (ten-thousand units) wins, otherwise the system table.
func resolveBaseIncome(occupation, currentRank string, declaredIncome decimal.Decimal) decimal.Decimal {
	if declaredIncome.GreaterThan(decimal.Zero) {
		return moneyutil.WanToYuan(declaredIncome)
	}
	base, ok := systemBaseIncome[occupation]
	if !ok {
		base = genericBaseIncome
	}
	multiplier := decimal.NewFromInt(1)
	if ranks, ok := rankMultipliers[occupation]; ok {
		if m, ok := ranks[currentRank]; ok {
			multiplier = m
		}
	}
	return base.Mul(multiplier)
}

// indexOf returns the rank's position on the ladder, or 0 for unknown
// ranks so the plan starts from the first rung.
func indexOf(ladder []string, rank string) int {
	for i, r := range ladder {
		if r == rank {
			return i
		}
	}
	return 0
}
