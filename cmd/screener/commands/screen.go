package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/presenter"
	"github.com/wonny/screener/internal/screening"
)

// screenCmd runs one screening request
var screenCmd = &cobra.Command{
	Use:   "screen [query text]",
	Short: "스크리닝 실행",
	Long: `구조화된 스크리닝 요청을 실행하고 결과 표를 출력합니다.

질의 원문(positional args)은 스크리닝 실패 시 폴백 응답에 사용됩니다.

Filters:
  --filter field:operator:value   (list values are comma separated)
  operators: eq, gt, lt, gte, lte, btwn, is-in

Example:
  go run ./cmd/screener screen "today's top gainers" --name day_gainers
  go run ./cmd/screener screen "cheap indian stocks" --mode equity \
      --filter region:eq:in --filter intradayprice:gt:5 --filter peratio.lasttwelvemonths:btwn:0,25
  go run ./cmd/screener screen --request request.json --json`,
	RunE: runScreen,
}

var (
	screenMode    string
	screenNames   []string
	screenFilters []string
	screenComb    string
	screenSort    string
	screenAsc     bool
	screenLimit   int
	screenReqFile string
	screenJSON    bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenMode, "mode", "", "predefined | equity | fund (default: predefined when --name is set, else equity)")
	screenCmd.Flags().StringSliceVar(&screenNames, "name", nil, "predefined screener name (repeatable)")
	screenCmd.Flags().StringArrayVar(&screenFilters, "filter", nil, "filter as field:operator:value (repeatable)")
	screenCmd.Flags().StringVar(&screenComb, "comb", "and", "filter combinator: and | or")
	screenCmd.Flags().StringVar(&screenSort, "sort", "", "sort field (default percentchange)")
	screenCmd.Flags().BoolVar(&screenAsc, "asc", false, "sort ascending")
	screenCmd.Flags().IntVar(&screenLimit, "limit", 0, "max rows per result set (default SCREENER_DEFAULT_LIMIT)")
	screenCmd.Flags().StringVar(&screenReqFile, "request", "", "JSON request file ('-' for stdin); overrides the other flags")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "print the raw response as JSON")
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	queryText := strings.Join(args, " ")

	var (
		req contracts.ScreeningRequest
		err error
	)
	if screenReqFile != "" {
		req, err = readRequest(screenReqFile, cmd.InOrStdin())
	} else {
		req, err = buildRequest(requestFlags{
			mode:    screenMode,
			names:   screenNames,
			filters: screenFilters,
			comb:    screenComb,
			sort:    screenSort,
			asc:     screenAsc,
			limit:   screenLimit,
		})
	}
	if err != nil {
		return err
	}

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	if req.Limit <= 0 {
		req.Limit = a.cfg.Screener.DefaultLimit
	}

	resp := a.service.Run(ctx, queryText, req)

	if screenJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	return printResponse(cmd.OutOrStdout(), resp)
}

// requestFlags is the flag form of a screening request
type requestFlags struct {
	mode    string
	names   []string
	filters []string
	comb    string
	sort    string
	asc     bool
	limit   int
}

// buildRequest turns flags into a screening request
func buildRequest(f requestFlags) (contracts.ScreeningRequest, error) {
	req := contracts.ScreeningRequest{
		SortField:     f.sort,
		SortAscending: f.asc,
		Limit:         f.limit,
	}

	switch {
	case f.mode != "":
		mode, err := contracts.ParseMode(f.mode)
		if err != nil {
			return req, err
		}
		req.Mode = mode
	case len(f.names) > 0:
		req.Mode = contracts.ModePredefined
	default:
		req.Mode = contracts.ModeEquity
	}

	if req.Mode == contracts.ModePredefined {
		req.PredefinedNames = f.names
		return req, nil
	}

	if f.comb != "" {
		op, err := contracts.ParseOperator(f.comb)
		if err != nil {
			return req, err
		}
		req.CombinationOperator = op
	}

	for _, raw := range f.filters {
		filter, err := parseFilter(raw)
		if err != nil {
			return req, err
		}
		req.Filters = append(req.Filters, filter)
	}

	return req, nil
}

// parseFilter parses "field:operator:value"; value may be a comma separated list
func parseFilter(raw string) (contracts.FilterTriple, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return contracts.FilterTriple{}, fmt.Errorf("invalid filter %q (expected field:operator:value)", raw)
	}

	op, err := contracts.ParseOperator(parts[1])
	if err != nil {
		return contracts.FilterTriple{}, fmt.Errorf("filter %q: %w", raw, err)
	}

	items := strings.Split(parts[2], ",")
	var value contracts.FilterValue
	if len(items) == 1 && op != contracts.OpBetween && op != contracts.OpIsIn {
		value = contracts.ScalarValue(parseScalar(items[0]))
	} else {
		scalars := make([]contracts.Scalar, len(items))
		for i, item := range items {
			scalars[i] = parseScalar(item)
		}
		value = contracts.ListValue(scalars...)
	}

	return contracts.NewFilter(strings.ToLower(strings.TrimSpace(parts[0])), op, value), nil
}

func parseScalar(s string) contracts.Scalar {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return contracts.Number(n)
	}
	switch strings.ToLower(s) {
	case "true":
		return contracts.Bool(true)
	case "false":
		return contracts.Bool(false)
	}
	return contracts.String(s)
}

// readRequest decodes a JSON request from a file or stdin
func readRequest(path string, stdin io.Reader) (contracts.ScreeningRequest, error) {
	var req contracts.ScreeningRequest

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

// printResponse renders result tables, or the fallback answer
func printResponse(w io.Writer, resp *screening.Response) error {
	if resp.UsedFallback() {
		fmt.Fprintln(w, resp.Fallback)
		return nil
	}

	for _, rs := range resp.Results {
		if err := presenter.ForResultSet(rs).Render(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
