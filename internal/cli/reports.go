package cli

import (
	"errors"
	"fmt"
	"time"

	"clap-quiz/internal/config"
	infraredis "clap-quiz/internal/infra/redis"
	"github.com/spf13/cobra"
)

// NewReportsCmd prints score reports queued in Redis by finished sessions.
func NewReportsCmd(configPath *string) *cobra.Command {
	var follow bool
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Drain queued score reports from Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Redis.Addr == "" {
				return fmt.Errorf("redis addr not configured")
			}
			ctx := cmd.Context()
			client, err := newRedisClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			queue := infraredis.NewScoreQueue(client)
			for {
				report, err := queue.Pop(ctx, time.Second)
				switch {
				case errors.Is(err, infraredis.ErrQueueEmpty):
					if !follow {
						return nil
					}
					continue
				case err != nil:
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", report.SessionID, report.Message)
			}
		},
	}
	cmd.Flags().BoolVar(&follow, "follow", false, "keep waiting for new reports")
	return cmd
}
