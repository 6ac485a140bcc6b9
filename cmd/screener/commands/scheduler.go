package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mbattaglia/cedear-screener/internal/scheduler"
	"github.com/mbattaglia/cedear-screener/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background refresh scheduler",
	Long: `Starts the scheduler that periodically re-runs every strategy so
the market-data caches stay warm.

Example:
  go run ./cmd/screener scheduler
  go run ./cmd/screener scheduler --schedule "0 */30 * * * *"`,
	RunE: runScheduler,
}

var refreshSchedule string

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().StringVar(&refreshSchedule, "schedule", "", "cron expression with seconds (default every 15 minutes)")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	svc, redisClient, err := buildScreener(cfg, log, nil)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	sched := scheduler.New(log)
	refreshJob := jobs.NewRefreshJob(svc, refreshSchedule, log)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("add refresh job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	// Warm the caches immediately instead of waiting for the first tick.
	if err := sched.RunJob(refreshJob.Name()); err != nil {
		log.WithError(err).Warn("Initial refresh failed to start")
	}

	fmt.Println("Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
