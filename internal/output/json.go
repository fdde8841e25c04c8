package output

import (
	json "github.com/goccy/go-json"

	"github.com/lifeplan/income-engine/internal/domain"
)

// JSONFormatter serializes the household projection as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(projection *domain.HouseholdProjection) ([]byte, error) {
	return json.MarshalIndent(projection, "", "  ")
}
