package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/screener/internal/scheduler"
	"github.com/wonny/screener/internal/scheduler/jobs"
	"github.com/wonny/screener/internal/screenconfig"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "예약 스크리닝 관리",
	Long: `SCHEDULE_FILE(YAML)에 정의된 스크리닝을 cron 일정으로 실행합니다.

Subcommands:
  validate  - 스케줄 파일 검증
  start     - 스케줄러 시작
  run       - 특정 스크리닝 즉시 실행
  list      - 등록된 스크리닝 목록

Example:
  go run ./cmd/screener schedule validate --file screens.yaml
  go run ./cmd/screener schedule start
  go run ./cmd/screener schedule run opening_movers`,
}

var (
	scheduleValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "스케줄 파일 검증",
		RunE:  runScheduleValidate,
	}

	scheduleStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		RunE:  runScheduleStart,
	}

	scheduleRunCmd = &cobra.Command{
		Use:   "run [screen_name]",
		Short: "특정 스크리닝 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runScheduleRun,
	}

	scheduleListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 스크리닝 목록",
		RunE:  runScheduleList,
	}
)

var scheduleFile string

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleValidateCmd)
	scheduleCmd.AddCommand(scheduleStartCmd)
	scheduleCmd.AddCommand(scheduleRunCmd)
	scheduleCmd.AddCommand(scheduleListCmd)

	scheduleCmd.PersistentFlags().StringVar(&scheduleFile, "file", "", "schedule YAML (default SCHEDULE_FILE)")
}

// loadSchedule resolves and parses the schedule file
func loadSchedule(defaultPath string) (*screenconfig.File, string, error) {
	path := scheduleFile
	if path == "" {
		path = defaultPath
	}
	if path == "" {
		return nil, "", fmt.Errorf("no schedule file (set SCHEDULE_FILE or --file)")
	}

	f, _, err := screenconfig.Load(path)
	if err != nil {
		return nil, "", err
	}

	hash, err := screenconfig.Hash(f)
	if err != nil {
		return nil, "", err
	}
	return f, hash, nil
}

func runScheduleValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	f, hash, err := loadSchedule(cfg.ScheduleFile)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	PrintSuccess(w, fmt.Sprintf("%d screens valid (timezone %s, hash %s)", len(f.Screens), f.Location(), hash[:12]))
	for _, s := range f.Screens {
		fmt.Fprintf(w, "  - %-30s %-20s %s\n", s.Name, s.Schedule, s.Request.Mode)
	}
	return nil
}

// initScheduler wires the screening stack and registers one job per screen
func initScheduler(ctx context.Context) (*scheduler.Scheduler, *app, error) {
	a, err := newApp(ctx, true)
	if err != nil {
		return nil, nil, err
	}

	f, hash, err := loadSchedule(a.cfg.ScheduleFile)
	if err != nil {
		a.close()
		return nil, nil, err
	}

	screenJobs, err := jobs.NewScreenJobs(f, a.service, os.Stdout, a.logger)
	if err != nil {
		a.close()
		return nil, nil, err
	}

	sched := scheduler.New(a.logger,
		scheduler.WithLocation(f.Location()),
		scheduler.WithJobTimeout(a.cfg.Screener.Timeout*4),
	)
	for _, job := range screenJobs {
		if err := sched.AddJob(job); err != nil {
			a.close()
			return nil, nil, fmt.Errorf("register %s: %w", job.Name(), err)
		}
	}

	a.logger.WithFields(map[string]interface{}{
		"screens": len(screenJobs),
		"hash":    hash,
	}).Info("Schedule loaded")

	return sched, a, nil
}

func runScheduleStart(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Screener Scheduler ===")

	sched, a, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.close()

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered screens:")
	for _, name := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	printStats(sched)
	fmt.Println("Scheduler stopped")

	return nil
}

func runScheduleRun(cmd *cobra.Command, args []string) error {
	sched, a, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.close()

	result, err := sched.RunJobSync(args[0])
	if err != nil {
		return fmt.Errorf("run screen: %w", err)
	}

	if !result.Success {
		PrintWarning(cmd.OutOrStdout(), fmt.Sprintf("%s failed after %s: %s", result.JobName, result.Duration, result.Error))
		return fmt.Errorf("screen %s failed", result.JobName)
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s completed in %s", result.JobName, result.Duration))
	return nil
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	f, _, err := loadSchedule(cfg.ScheduleFile)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	now := time.Now().In(f.Location())
	for _, sc := range f.Screens {
		next, err := scheduler.ParseSchedule(sc.Schedule)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  - %-30s %-20s next %s\n", sc.Name, sc.Schedule, next.Next(now).Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func printStats(sched *scheduler.Scheduler) {
	stats := sched.GetJobStats()

	for _, name := range sched.GetAllJobs() {
		stat := stats[name]
		fmt.Printf("📊 %s\n", name)
		fmt.Printf("   Schedule: %s\n", stat.Schedule)
		fmt.Printf("   Total Runs: %d\n", stat.TotalRuns)
		if stat.TotalRuns > 0 {
			fmt.Printf("   Success: %d (%.1f%%)\n", stat.SuccessCount, stat.SuccessRate*100)
			fmt.Printf("   Failures: %d\n", stat.FailureCount)
		}
		if stat.LastRun != nil {
			fmt.Printf("   Last Run: %s\n", stat.LastRun.Format("2006-01-02 15:04:05"))
		}
		if stat.NextRun != nil {
			fmt.Printf("   Next Run: %s\n", stat.NextRun.Format("2006-01-02 15:04:05 MST"))
		}
		fmt.Println()
	}
}
