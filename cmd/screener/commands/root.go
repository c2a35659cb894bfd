package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Stock and fund screener",
	Long: `Screener Unified CLI

자연어 질의에서 추출한 조건으로 주식/펀드를 스크리닝합니다.
사전 정의 스크리너, 주식 조건, 펀드 조건 세 가지 모드를 지원합니다.

Usage:
  go run ./cmd/screener [command]

Examples:
  go run ./cmd/screener screen --name day_gainers --name most_actives
  go run ./cmd/screener screen --mode equity --filter region:eq:in --filter intradayprice:gt:5
  go run ./cmd/screener catalog list
  go run ./cmd/screener rates
  go run ./cmd/screener api
  go run ./cmd/screener schedule start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
