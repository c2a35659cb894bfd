package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/currency"
)

// ratesCmd loads and prints the reference rate table
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "기준 환율 조회",
	Long: `기준 환율 테이블을 로드하여 출력합니다.

로드 순서: Redis 캐시 → ECB 일일 기준환율 → 내장 스냅샷

Example:
  go run ./cmd/screener rates
  go run ./cmd/screener rates --region jp
  go run ./cmd/screener rates --convert 100:USD:INR`,
	RunE: runRates,
}

var (
	ratesRegion  string
	ratesConvert string
)

func init() {
	rootCmd.AddCommand(ratesCmd)

	ratesCmd.Flags().StringVar(&ratesRegion, "region", "", "show the currency a region's filters are normalized to")
	ratesCmd.Flags().StringVar(&ratesConvert, "convert", "", "convert amount:FROM:TO")
}

func runRates(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	table, rdb, err := loadRates(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("load reference rates: %w", err)
	}
	defer rdb.Close()

	w := cmd.OutOrStdout()

	if ratesRegion != "" {
		code := currency.CurrencyForRegion(ratesRegion)
		fmt.Fprintf(w, "%s → %s (known region: %t, rate available: %t)\n",
			strings.ToLower(ratesRegion), code, currency.IsKnownRegion(ratesRegion), table.Has(code))
		return nil
	}

	if ratesConvert != "" {
		amount, from, to, err := parseConversion(ratesConvert)
		if err != nil {
			return err
		}
		out, err := table.Convert(amount, from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.4f %s = %.4f %s\n", amount, from, out, to)
		return nil
	}

	PrintHeader(w, fmt.Sprintf("Reference Rates %s (%s)", table.Date(), table.Source()))
	for _, code := range table.Currencies() {
		rate, _ := table.Rate(code)
		fmt.Fprintf(w, "  %-4s %14.4f\n", code, rate)
	}
	PrintSeparator(w)
	fmt.Fprintf(w, "%d currencies, units per EUR\n", len(table.Currencies()))
	return nil
}

// parseConversion parses "amount:FROM:TO"
func parseConversion(raw string) (float64, string, string, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return 0, "", "", fmt.Errorf("invalid conversion %q (expected amount:FROM:TO)", raw)
	}

	amount, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid amount %q: %w", parts[0], err)
	}

	return amount, strings.ToUpper(parts[1]), strings.ToUpper(parts[2]), nil
}
