package contracts

import (
	"encoding/json"
	"fmt"
)

// Row is one result row returned by the screening service: field name -> value
type Row map[string]interface{}

// Float returns a numeric field value
func (r Row) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Text returns a string field value (non-empty strings only)
func (r Row) Text(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, v != ""
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}

// ResultSet is the tagged output of one screening submission
type ResultSet struct {
	Mode     Mode   `json:"mode"`
	Screener string `json:"screener,omitempty"` // predefined screener name
	Title    string `json:"title"`
	Rows     []Row  `json:"rows"`
}

// Empty reports a valid "no matches" outcome
func (rs *ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// Submission is what the dispatcher sends to the screening service
type Submission struct {
	Query         QueryNode // nil means no constraint
	QuoteType     QuoteType
	SortField     string
	SortAscending bool
	Limit         int
}
