package presenter

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/wonny/screener/internal/contracts"
)

// NA is shown for missing or non-numeric values
const NA = "N/A"

type unit struct {
	size   float64
	suffix string
}

var (
	unitT = unit{1e12, "T"}
	unitB = unit{1e9, "B"}
	unitM = unit{1e6, "M"}
	unitK = unit{1e3, "K"}
)

// scale renders v in the first unit it reaches, else in the last unit given
func scale(v float64, units ...unit) string {
	u := units[len(units)-1]
	for _, candidate := range units {
		if math.Abs(v) >= candidate.size {
			u = candidate
			break
		}
	}
	return fmt.Sprintf("%.2f%s", v/u.size, u.suffix)
}

// quote wraps a result row with display defaults
type quote struct {
	row contracts.Row
}

func (q quote) text(key string) string {
	if s, ok := q.row.Text(key); ok {
		return s
	}
	return NA
}

func (q quote) name() string {
	if s, ok := q.row.Text("shortName"); ok {
		return s
	}
	return q.text("longName")
}

func (q quote) currency() string {
	if s, ok := q.row.Text("financialCurrency"); ok {
		return s
	}
	return "USD"
}

// num formats a numeric field or returns N/A
func (q quote) num(key string, format func(float64) string) string {
	v, ok := q.row.Float(key)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	return format(v)
}

func fixed2(v float64) string { return fmt.Sprintf("%.2f", v) }

func signedPercent(v float64) string { return fmt.Sprintf("%+.2f%%", v) }

func percent(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func withCommas(v float64) string { return humanize.FormatFloat("#,###.##", v) }
