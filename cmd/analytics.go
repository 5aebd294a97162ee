package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/BinLe1988/reply-assist/pkg/analytics"
	"github.com/BinLe1988/reply-assist/pkg/logger"
	"github.com/BinLe1988/reply-assist/pkg/store"
)

var (
	analyticsSession string
	exportFormat     string
	exportOut        string
)

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsExportCmd)
	analyticsCmd.AddCommand(analyticsResetCmd)

	analyticsCmd.PersistentFlags().StringVar(&analyticsSession, "session", "", "session id")
	_ = analyticsCmd.MarkPersistentFlagRequired("session")

	analyticsExportCmd.Flags().StringVar(&exportFormat, "format", analytics.FormatJSON, "export format: json or xlsx")
	analyticsExportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default reply-assist-analytics-<date>.<format>)")
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Inspect stored analytics",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var analyticsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a session's analytics to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		file, err := analytics.NewTracker(ctx, st, analyticsSession, log).Export(exportFormat)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = file.FileName
		}
		if err := os.WriteFile(out, file.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported analytics to %s\n", out)
		return nil
	},
}

var analyticsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset a session's analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		st, cleanup, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		return resetAnalytics(ctx, st, analyticsSession, cmd.OutOrStdout(), log)
	},
}

// resetAnalytics 清零会话统计，写回成功后才输出结果
func resetAnalytics(ctx context.Context, st store.Store, sessionID string, out io.Writer, log *logger.Logger) error {
	if _, err := analytics.NewTracker(ctx, st, sessionID, log).Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Analytics reset for session %s\n", sessionID)
	return nil
}
