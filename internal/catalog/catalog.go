package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/currency"
)

// Entry is one predefined screen: a prebuilt query submitted verbatim
type Entry struct {
	Name          string              `json:"name"`
	Title         string              `json:"title"`
	QuoteType     contracts.QuoteType `json:"quote_type"`
	Query         contracts.QueryNode `json:"query"`
	SortField     string              `json:"sort_field"`
	SortAscending bool                `json:"sort_ascending"`
}

// Catalog is a read-only set of predefined screens keyed by canonical name
// ⭐ SSOT: 사전 정의 스크리너 목록
type Catalog struct {
	entries map[string]Entry
	names   []string
}

// New builds a catalog from entries; names must be unique
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}

	for _, e := range entries {
		name := Normalize(e.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog entry without name")
		}
		if _, dup := c.entries[name]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", name)
		}
		if e.Query == nil {
			return nil, fmt.Errorf("catalog entry %q has no query", name)
		}

		e.Name = name
		if e.Title == "" {
			e.Title = Titleize(name)
		}
		if e.QuoteType == "" {
			e.QuoteType = contracts.QuoteTypeEquity
		}
		if e.SortField == "" {
			e.SortField = contracts.DefaultSortField
		}

		c.entries[name] = e
		c.names = append(c.names, name)
	}

	sort.Strings(c.names)
	return c, nil
}

var defaultCatalog = mustDefault()

func mustDefault() *Catalog {
	entries := coreEntries()
	entries = append(entries, regionalEntries()...)
	entries = append(entries, sectorEntries()...)
	entries = append(entries, industryEntries()...)

	c, err := New(entries...)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Default returns the built-in catalog
func Default() *Catalog {
	return defaultCatalog
}

// Lookup returns the entry for a name ("Day Gainers", "day-gainers" and "day_gainers" match)
func (c *Catalog) Lookup(name string) (Entry, error) {
	e, ok := c.entries[Normalize(name)]
	if !ok {
		return Entry{}, &contracts.UnknownScreenerError{Name: name}
	}
	return e, nil
}

// Names returns all screen names, sorted
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Entries returns all entries in name order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.names))
	for i, n := range c.names {
		out[i] = c.entries[n]
	}
	return out
}

// Len returns the number of screens
func (c *Catalog) Len() int {
	return len(c.names)
}

// Normalize folds a user-supplied name to its canonical form
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

var upperWords = map[string]string{
	"us":   "US",
	"hc":   "HC",
	"ms":   "Morningstar",
	"etfs": "ETFs",
	"reit": "REIT",
}

// Titleize turns a canonical name into a display title ("day_gainers_gb" -> "Day Gainers GB").
// Only a trailing region code is uppercased.
func Titleize(name string) string {
	words := strings.Split(name, "_")
	last := len(words) - 1
	for i, w := range words {
		if repl, ok := upperWords[w]; ok {
			words[i] = repl
			continue
		}
		if i > 0 && i == last && len(w) == 2 && currency.IsKnownRegion(w) {
			words[i] = strings.ToUpper(w)
			continue
		}
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
