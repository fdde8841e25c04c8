package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/lifeplan/income-engine/internal/domain"
)

// CSVFormatter exports the year-by-year series, one row per person-year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(projection *domain.HouseholdProjection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Person", "Age", "IncomeWan", "GrowthRatePercent", "Retired"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if err := writeRows(w, "self", projection.Self); err != nil {
		return nil, err
	}
	if err := writeRows(w, "partner", projection.Partner); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(w *csv.Writer, person string, p *domain.PersonProjection) error {
	if p == nil {
		return nil
	}
	for _, row := range p.Rows {
		record := []string{
			person,
			strconv.Itoa(row.Age),
			row.Income.StringFixed(2),
			row.GrowthRatePercent.StringFixed(2),
			strconv.FormatBool(row.IsRetired),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
