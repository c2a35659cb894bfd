package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/catalog"
	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/external/yahoo"
	"github.com/wonny/screener/internal/fields"
)

// catalogCmd groups catalog inspection commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "스크리너 카탈로그 조회",
	Long: `사전 정의 스크리너와 필드 목록을 조회합니다.

Subcommands:
  list            - 사전 정의 스크리너 목록
  show [name]     - 스크리너 조건 (wire 형식)
  fields [mode]   - equity | fund 필드 목록

Example:
  go run ./cmd/screener catalog list --filter gainers
  go run ./cmd/screener catalog show day_gainers
  go run ./cmd/screener catalog fields fund`,
}

var (
	catalogListCmd = &cobra.Command{
		Use:   "list",
		Short: "사전 정의 스크리너 목록",
		RunE:  runCatalogList,
	}

	catalogShowCmd = &cobra.Command{
		Use:   "show [name]",
		Short: "스크리너 조건 출력",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogShow,
	}

	catalogFieldsCmd = &cobra.Command{
		Use:   "fields [mode]",
		Short: "필드 목록",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogFields,
	}
)

var catalogFilter string

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogFieldsCmd)

	catalogListCmd.Flags().StringVar(&catalogFilter, "filter", "", "substring to match in names")
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	needle := catalog.Normalize(catalogFilter)

	count := 0
	for _, e := range catalog.Default().Entries() {
		if needle != "" && !strings.Contains(e.Name, needle) {
			continue
		}
		fmt.Fprintf(w, "  %-45s %-10s %s\n", e.Name, e.QuoteType, e.Title)
		count++
	}

	PrintSeparator(w)
	fmt.Fprintf(w, "%d screeners\n", count)
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	entry, err := catalog.Default().Lookup(args[0])
	if err != nil {
		return err
	}

	query, err := yahoo.Encode(entry.Query)
	if err != nil {
		return fmt.Errorf("encode %s: %w", entry.Name, err)
	}

	w := cmd.OutOrStdout()
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s (%s)\n", entry.Title, entry.Name)
	PrintSeparator(w)
	fmt.Fprintf(w, "  Quote Type : %s\n", entry.QuoteType)
	fmt.Fprintf(w, "  Sort       : %s %s\n", entry.SortField, sortDirection(entry.SortAscending))
	fmt.Fprintf(w, "  Query      : %s\n", entry.Query.String())
	PrintSeparator(w)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(query)
}

func runCatalogFields(cmd *cobra.Command, args []string) error {
	mode, err := contracts.ParseMode(args[0])
	if err != nil {
		return err
	}

	list, err := fields.ForMode(mode)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, f := range list {
		marker := " "
		if f.Currency {
			marker = "$"
		}
		fmt.Fprintf(w, "  %s %-40s %s\n", marker, f.Name, strings.Join(f.Aliases, ", "))
	}

	PrintSeparator(w)
	fmt.Fprintf(w, "%d %s fields ($ = converted to the region's currency)\n", len(list), mode)
	return nil
}

func sortDirection(ascending bool) string {
	if ascending {
		return "ASC"
	}
	return "DESC"
}
