package presenter

import (
	"fmt"
	"time"

	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/contracts"
)

// Column is one table column
type Column struct {
	Name       string `json:"name"`
	AlignRight bool   `json:"align_right,omitempty"`
	Signed     bool   `json:"signed,omitempty"` // colored by sign when rendered
}

// Table is the display form of one result set. Pure data; see Render.
type Table struct {
	Title       string     `json:"title"`
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
	EmptyText   string     `json:"empty_text,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// IsEmpty reports a "no matches" table
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// ForResultSet picks the layout for the result set's mode
// ⭐ SSOT: 모드별 결과 표 구성은 여기서만
func ForResultSet(rs contracts.ResultSet) *Table {
	switch rs.Mode {
	case contracts.ModePredefined:
		name := rs.Screener
		if name == "" {
			name = rs.Title
		}
		return Predefined(name, rs.Rows)
	case contracts.ModeFund:
		return Fund(rs.Rows)
	default:
		return Equity(rs.Rows)
	}
}

var predefinedColumns = []Column{
	{Name: "Symbol"},
	{Name: "Company Name"},
	{Name: "Price (USD)", AlignRight: true},
	{Name: "% Change", AlignRight: true, Signed: true},
	{Name: "Market Cap", AlignRight: true},
	{Name: "Forward P/E", AlignRight: true},
	{Name: "P/B Ratio", AlignRight: true},
	{Name: "Volume", AlignRight: true},
}

// Predefined lays out a predefined screener's rows
func Predefined(screenerName string, rows []contracts.Row) *Table {
	t := &Table{
		Title:       "Screener Results: " + catalog.Titleize(screenerName),
		Columns:     predefinedColumns,
		Rows:        make([][]string, 0, len(rows)),
		EmptyText:   fmt.Sprintf("No results found for the '%s' screener.", screenerName),
		GeneratedAt: time.Now(),
	}

	for _, row := range rows {
		q := quote{row: row}
		cur := q.currency()
		t.Rows = append(t.Rows, []string{
			q.text("symbol"),
			q.name(),
			q.num("regularMarketPrice", func(v float64) string { return cur + " " + fixed2(v) }),
			q.num("regularMarketChangePercent", signedPercent),
			q.num("marketCap", func(v float64) string { return scale(v, unitB) }),
			q.num("forwardPE", fixed2),
			q.num("priceToBook", fixed2),
			q.num("regularMarketVolume", func(v float64) string { return scale(v, unitM) }),
		})
	}
	return t
}

var equityColumns = []Column{
	{Name: "Symbol"},
	{Name: "Company Name"},
	{Name: "Price", AlignRight: true},
	{Name: "% Change", AlignRight: true, Signed: true},
	{Name: "Market Cap", AlignRight: true},
	{Name: "Trailing P/E", AlignRight: true},
	{Name: "P/B Ratio", AlignRight: true},
	{Name: "Volume", AlignRight: true},
}

// Equity lays out equity screener rows
func Equity(rows []contracts.Row) *Table {
	t := &Table{
		Title:       "Equity Screener Results",
		Columns:     equityColumns,
		Rows:        make([][]string, 0, len(rows)),
		EmptyText:   "No equity results found for the screener.",
		GeneratedAt: time.Now(),
	}

	for _, row := range rows {
		q := quote{row: row}
		cur := q.currency()
		t.Rows = append(t.Rows, []string{
			q.text("symbol"),
			q.name(),
			q.num("regularMarketPrice", func(v float64) string { return cur + " " + withCommas(v) }),
			q.num("regularMarketChangePercent", signedPercent),
			q.num("marketCap", func(v float64) string { return cur + " " + scale(v, unitB, unitM) }),
			q.num("trailingPE", fixed2),
			q.num("priceToBook", fixed2),
			q.num("regularMarketVolume", func(v float64) string { return scale(v, unitM, unitK) }),
		})
	}
	return t
}

var fundColumns = []Column{
	{Name: "Symbol"},
	{Name: "Fund Name"},
	{Name: "Price (NAV)", AlignRight: true},
	{Name: "% Change", AlignRight: true, Signed: true},
	{Name: "Net Assets", AlignRight: true},
	{Name: "Expense Ratio", AlignRight: true},
	{Name: "YTD Return", AlignRight: true},
	{Name: "Trailing P/E", AlignRight: true},
}

// Fund lays out mutual fund screener rows
func Fund(rows []contracts.Row) *Table {
	t := &Table{
		Title:       "Fund Screener Results",
		Columns:     fundColumns,
		Rows:        make([][]string, 0, len(rows)),
		EmptyText:   "No fund results found for the screener.",
		GeneratedAt: time.Now(),
	}

	for _, row := range rows {
		q := quote{row: row}
		cur := q.currency()
		t.Rows = append(t.Rows, []string{
			q.text("symbol"),
			q.name(),
			q.num("regularMarketPrice", func(v float64) string { return cur + " " + fixed2(v) }),
			q.num("regularMarketChangePercent", signedPercent),
			q.num("netAssets", func(v float64) string { return "$" + scale(v, unitT, unitB) }),
			q.num("netExpenseRatio", func(v float64) string { return percent(v * 100) }),
			q.num("ytdReturn", percent),
			q.num("trailingPE", fixed2),
		})
	}
	return t
}
