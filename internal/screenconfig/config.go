package screenconfig

import (
	"fmt"

	"github.com/wonny/screener/internal/contracts"
)

// File is the scheduled-screens YAML document
type File struct {
	Version  int      `yaml:"version" json:"version"`
	Timezone string   `yaml:"timezone" json:"timezone"`
	Screens  []Screen `yaml:"screens" json:"screens"`
}

// Screen is one scheduled screening run
type Screen struct {
	Name     string  `yaml:"name" json:"name"`
	Schedule string  `yaml:"schedule" json:"schedule"` // cron expression, seconds optional
	Query    string  `yaml:"query" json:"query"`       // free text handed to the fallback on failure
	Request  Request `yaml:"request" json:"request"`
}

// Request mirrors contracts.ScreeningRequest in YAML form
type Request struct {
	Mode                string   `yaml:"mode" json:"mode"`
	CombinationOperator string   `yaml:"combination_operator" json:"combination_operator,omitempty"`
	Filters             []Filter `yaml:"filters" json:"filters,omitempty"`
	PredefinedNames     []string `yaml:"predefined_names" json:"predefined_names,omitempty"`
	SortField           string   `yaml:"sort_field" json:"sort_field,omitempty"`
	SortAscending       bool     `yaml:"sort_ascending" json:"sort_ascending"`
	Limit               int      `yaml:"limit" json:"limit,omitempty"`
}

// Filter is one (field, operator, value) triple; value is a scalar or a list
type Filter struct {
	Field    string      `yaml:"field" json:"field"`
	Operator string      `yaml:"operator" json:"operator"`
	Value    interface{} `yaml:"value" json:"value"`
}

// ToRequest converts the YAML form into a screening request
func (r Request) ToRequest() (contracts.ScreeningRequest, error) {
	mode, err := contracts.ParseMode(r.Mode)
	if err != nil {
		return contracts.ScreeningRequest{}, err
	}

	filters := make([]contracts.FilterTriple, 0, len(r.Filters))
	for i, f := range r.Filters {
		value, err := contracts.ValueOf(f.Value)
		if err != nil {
			return contracts.ScreeningRequest{}, fmt.Errorf("filters[%d].value: %w", i, err)
		}
		filters = append(filters, contracts.NewFilter(f.Field, contracts.Operator(f.Operator), value))
	}

	return contracts.ScreeningRequest{
		Mode:                mode,
		CombinationOperator: contracts.Operator(r.CombinationOperator),
		Filters:             filters,
		PredefinedNames:     r.PredefinedNames,
		SortField:           r.SortField,
		SortAscending:       r.SortAscending,
		Limit:               r.Limit,
	}, nil
}
