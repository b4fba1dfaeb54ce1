package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/nav-tracker/internal/logger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var flagSchedule string

// newWatchCmd creates the watch command: run the check on a cron schedule.
// The cron scheduler runs jobs sequentially per entry, so two checks never
// overlap.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the NAV check on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			c := cron.New(cron.WithLocation(cfg.Location))
			_, err = c.AddFunc(flagSchedule, func() {
				result, err := checkOnce(cfg)
				if err != nil {
					logger.Error("scheduled check failed", nil, err)
					return
				}
				logger.Info("scheduled check complete", logger.Fields{
					"funds":   len(result.Results),
					"updated": result.Updated,
					"failed":  result.Failed,
				})
			})
			if err != nil {
				return fmt.Errorf("invalid schedule %q: %w", flagSchedule, err)
			}

			logger.Info("watch started", logger.Fields{
				"schedule": flagSchedule,
				"timezone": cfg.Timezone,
			})
			c.Start()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			// Stop waits for an in-flight run before returning, so an
			// interrupt never cuts a store write in half.
			<-c.Stop().Done()
			logger.Info("watch stopped", nil)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSchedule, "schedule", "0 18 * * *", "Cron schedule in the source timezone")
	return cmd
}
