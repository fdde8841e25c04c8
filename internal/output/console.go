package output

import (
	"bytes"
	"fmt"

	"github.com/lifeplan/income-engine/internal/domain"
)

// ConsoleFormatter renders the household projection as plain text tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(projection *domain.HouseholdProjection) ([]byte, error) {
	buf := &bytes.Buffer{}

	writePerson(buf, "Self", projection.Self)
	writePerson(buf, "Partner", projection.Partner)

	fmt.Fprintf(buf, "Combined lifetime total: %s wan\n", projection.CombinedTotal.StringFixed(2))
	return buf.Bytes(), nil
}

func writePerson(buf *bytes.Buffer, label string, p *domain.PersonProjection) {
	if p == nil {
		return
	}

	fmt.Fprintf(buf, "=== %s ===\n", label)
	if len(p.Rows) == 0 {
		fmt.Fprintln(buf, "no projection available")
	} else {
		fmt.Fprintf(buf, "%-5s %12s %8s %8s\n", "Age", "Income(wan)", "Rate%", "Phase")
		for _, row := range p.Rows {
			phase := "working"
			if row.IsRetired {
				phase = "retired"
			}
			fmt.Fprintf(buf, "%-5d %12s %8s %8s\n", row.Age, row.Income.StringFixed(2), row.GrowthRatePercent.StringFixed(1), phase)
		}
	}
	fmt.Fprintf(buf, "Lifetime total: %s wan\n", p.LifetimeTotal.StringFixed(2))

	if len(p.CareerStages) > 0 {
		fmt.Fprintf(buf, "%-14s %-26s %-8s %8s %14s\n", "Stage", "Position", "Ages", "Years", "Income(yuan)")
		for _, stage := range p.CareerStages {
			fmt.Fprintf(buf, "%-14s %-26s %-8s %8d %14s\n",
				stage.StageName, stage.Position, stage.AgeRange, stage.DurationYears, stage.YearlyIncome.StringFixed(0))
		}
	}
	fmt.Fprintln(buf)
}
