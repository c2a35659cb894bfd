package currency

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/internal/contracts"
)

func testTable(t *testing.T) *RateTable {
	t.Helper()
	table, err := NewRateTable("2025-01-02", "test", map[string]float64{
		"USD": 1.25,
		"INR": 100,
		"JPY": 150,
	})
	require.NoError(t, err)
	return table
}

func TestRateTable_Convert(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{"usd to inr", 5, "USD", "INR", 400},
		{"inr to usd", 400, "INR", "USD", 5},
		{"eur anchor", 2, "EUR", "JPY", 300},
		{"same currency", 7, "USD", "USD", 7},
		{"lower case codes", 5, "usd", "inr", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Convert(tt.amount, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRateTable_ConvertUnknownCurrency(t *testing.T) {
	table := testTable(t)

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"unknown target", "USD", "KWD"},
		{"unknown source", "KWD", "USD"},
		{"unknown same currency", "KWD", "KWD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Convert(1, tt.from, tt.to)
			require.Error(t, err)
			assert.True(t, errors.Is(err, contracts.ErrConversion))

			var convErr *contracts.ConversionError
			require.True(t, errors.As(err, &convErr))
			assert.Equal(t, tt.from, convErr.From)
			assert.Equal(t, tt.to, convErr.To)
		})
	}
}

func TestNewRateTable_Invalid(t *testing.T) {
	_, err := NewRateTable("d", "s", map[string]float64{"USD": 0})
	assert.Error(t, err)

	_, err = NewRateTable("d", "s", map[string]float64{"US": 1})
	assert.Error(t, err)

	_, err = NewRateTable("d", "s", nil)
	assert.Error(t, err)
}

func TestRateTable_Snapshot(t *testing.T) {
	table := testTable(t)

	snap := table.Snapshot()
	snap.Rates["USD"] = 99 // must not leak into the table

	rate, ok := table.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, 1.25, rate)

	rebuilt, err := FromSnapshot(table.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, table.Currencies(), rebuilt.Currencies())
	assert.Equal(t, "2025-01-02", rebuilt.Date())
}

func TestRateTable_Currencies(t *testing.T) {
	table := testTable(t)

	assert.Equal(t, []string{"EUR", "INR", "JPY", "USD"}, table.Currencies())
	assert.True(t, table.Has("eur"))
	assert.False(t, table.Has("ARS"))
	assert.Equal(t, "cache", table.WithSource("cache").Source())
	assert.Equal(t, "test", table.Source())
}
