package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/internal/audit/lighthouse"
	"github.com/wheemin1/MobileSiteCheck/internal/audit/simulated"
	"github.com/wheemin1/MobileSiteCheck/internal/config"
	"github.com/wheemin1/MobileSiteCheck/internal/render"
	"github.com/wheemin1/MobileSiteCheck/internal/store"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	var (
		engine  string
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Audit a URL and print a markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
			})))

			fallback := simulated.NewProvider()
			var primary audit.Provider
			switch engine {
			case "simulated":
				primary = fallback
			case "lighthouse":
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				primary = lighthouse.NewProvider(cfg.Audit, cfg.Render)
			default:
				return fmt.Errorf("unknown engine %q: must be simulated or lighthouse", engine)
			}

			svc := audit.NewService(primary, fallback, store.NewMemStore(0), timeout)
			report, err := svc.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			doc, err := render.NewMarkdownRenderer().Render(report)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			cmd.Printf("report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "e", "simulated", "audit engine: simulated or lighthouse")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "per-provider timeout")

	return cmd
}
