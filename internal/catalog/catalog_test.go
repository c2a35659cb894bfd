package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/wonny/screener/internal/contracts"
)

func TestDefault_Lookup(t *testing.T) {
	cat := Default()

	tests := []struct {
		name      string
		want      string
		quoteType c.QuoteType
	}{
		{"day_gainers", "day_gainers", c.QuoteTypeEquity},
		{"Day Gainers", "day_gainers", c.QuoteTypeEquity},
		{"most-actives", "most_actives", c.QuoteTypeEquity},
		{"top_mutual_funds_in", "top_mutual_funds_in", c.QuoteTypeMutualFund},
		{"conservative_foreign_funds", "conservative_foreign_funds", c.QuoteTypeMutualFund},
		{"ms_technology", "ms_technology", c.QuoteTypeEquity},
		{"reit_office", "reit_office", c.QuoteTypeEquity},
		{"top_etfs_us", "top_etfs_us", c.QuoteTypeETF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := cat.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name)
			assert.Equal(t, tt.quoteType, e.QuoteType)
			assert.NotNil(t, e.Query)
			assert.NotEmpty(t, e.SortField)
		})
	}
}

func TestDefault_LookupUnknown(t *testing.T) {
	_, err := Default().Lookup("best_stocks_ever")
	require.Error(t, err)
	assert.True(t, errors.Is(err, c.ErrUnknownScreener))

	var unknown *c.UnknownScreenerError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "best_stocks_ever", unknown.Name)
}

func TestDefault_DayGainersQuery(t *testing.T) {
	e, err := Default().Lookup("day_gainers")
	require.NoError(t, err)

	want := c.And(
		c.Gt("percentchange", 3),
		c.Eq("region", c.String("us")),
		c.Or(
			c.Between("intradaymarketcap", 2e9, 1e10),
			c.Between("intradaymarketcap", 1e10, 1e11),
			c.Gt("intradaymarketcap", 1e11),
		),
		c.Gte("intradayprice", 5),
		c.Gt("dayvolume", 15000),
		c.MustNot(
			c.Eq("exchange", c.String("PNK")),
			c.Eq("exchange", c.String("OQB")),
			c.Eq("exchange", c.String("OQX")),
			c.Eq("exchange", c.String("OEM")),
			c.Eq("exchange", c.String("OGM")),
			c.Eq("exchange", c.String("XXX")),
			c.Eq("exchange", c.String("OBB")),
		),
	)

	if diff := cmp.Diff(want.String(), e.Query.String()); diff != "" {
		t.Errorf("day_gainers query mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Day Gainers", e.Title)
	assert.Equal(t, "percentchange", e.SortField)
	assert.False(t, e.SortAscending)
}

func TestDefault_DayLosersSortsAscending(t *testing.T) {
	e, err := Default().Lookup("day_losers")
	require.NoError(t, err)
	assert.True(t, e.SortAscending)
}

func TestDefault_Names(t *testing.T) {
	names := Default().Names()

	assert.IsNonDecreasing(t, names)
	assert.Equal(t, Default().Len(), len(names))
	assert.Greater(t, len(names), 100)
	for _, n := range []string{"day_gainers", "day_gainers_europe", "day_losers_gb", "most_actives_asia", "ms_utilities", "waste_management"} {
		assert.Contains(t, names, n)
	}
}

func TestDefault_QueriesAreWellFormed(t *testing.T) {
	for _, e := range Default().Entries() {
		root, ok := e.Query.(*c.Combinator)
		require.True(t, ok, "%s: root must be a combinator", e.Name)
		assert.False(t, root.Empty(), e.Name)

		for _, leaf := range c.Leaves(e.Query) {
			assert.NotEmpty(t, leaf.Field, e.Name)
			assert.True(t, leaf.Op.IsLeaf(), "%s: %s", e.Name, leaf.Op)
			if leaf.Op == c.OpBetween {
				assert.Len(t, leaf.Values, 2, e.Name)
			}
		}
	}
}

func TestNew_Duplicate(t *testing.T) {
	q := c.And(c.Gt("percentchange", 1))
	_, err := New(Entry{Name: "a", Query: q}, Entry{Name: "A", Query: q})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	cat, err := New(Entry{Name: "My Screen", Query: c.And(c.Gt("beta", 1))})
	require.NoError(t, err)

	e, err := cat.Lookup("my_screen")
	require.NoError(t, err)
	assert.Equal(t, "My Screen", e.Title)
	assert.Equal(t, c.QuoteTypeEquity, e.QuoteType)
	assert.Equal(t, c.DefaultSortField, e.SortField)

	_, err = New(Entry{Name: "no_query"})
	assert.Error(t, err)
}

func TestTitleize(t *testing.T) {
	tests := map[string]string{
		"day_gainers":         "Day Gainers",
		"day_gainers_gb":      "Day Gainers GB",
		"ms_basic_materials":  "Morningstar Basic Materials",
		"mega_cap_hc":         "Mega Cap HC",
		"reit_office":         "REIT Office",
		"top_mutual_funds_us": "Top Mutual Funds US",
		"my_screen":           "My Screen",
		"go_long_de":          "Go Long DE",
		"small_ab":            "Small Ab",
	}

	for in, want := range tests {
		assert.Equal(t, want, Titleize(in), in)
	}
}
