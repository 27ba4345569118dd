package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinexus/stylecore"
	"github.com/obinexus/stylecore/internal/printer"
	"github.com/obinexus/stylecore/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Reprocess stylesheets whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		config, err := stylecore.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		watcher, err := watch.New(logger, config, func(report stylecore.FileReport) {
			if len(report.Errors) > 0 {
				source, err := printer.ReadSourceCode(report.Filename)
				if err != nil {
					source = nil
				}
				fmt.Print(printer.FormatDiagnostics(report.Filename, report.Errors, source))
			}
			if report.Metrics != nil {
				fmt.Print(printer.FormatMetrics(report.Filename, *report.Metrics))
			}
		})
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}

		if err := watcher.Start(args); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		fmt.Printf("watching %v for changes\n", args)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		if err := watcher.Stop(); err != nil {
			logger.Error("Failed to stop watcher", zap.Error(err))
		}
	},
}
