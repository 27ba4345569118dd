package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinexus/stylecore"
	"github.com/obinexus/stylecore/internal/printer"
)

var (
	parseJSONOutput bool
	outPath         string
	noMinimize      bool
	renderOutput    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [paths...]",
	Short: "Parse stylesheets and report diagnostics",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := stylecore.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		if noMinimize {
			config.Minimize = false
		}

		runParseProcess(ctx, config, args, parseJSONOutput, outPath)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSONOutput, "json", false, "Output reports in JSON format")
	parseCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	parseCmd.Flags().BoolVar(&noMinimize, "no-minimize", false, "Skip the minimization pass")
	parseCmd.Flags().BoolVar(&renderOutput, "render", false, "Print the normalized stylesheet rebuilt from the tree")
}

func runParseProcess(ctx context.Context, config stylecore.Config, paths []string, isJSON bool, jsonOutput string) {
	reports, err := stylecore.ProcessFiles(ctx, logger, config, paths)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printReports(reports, isJSON, jsonOutput)

	if renderOutput {
		for _, report := range reports {
			source, err := os.ReadFile(report.Filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", report.Filename), zap.Error(err))
				continue
			}
			fmt.Print(stylecore.Parse(string(source)).Tree.String())
		}
	}

	for _, report := range reports {
		if len(report.Errors) > 0 {
			os.Exit(1)
		}
	}
}

func printReports(reports []stylecore.FileReport, isJSON bool, jsonOutput string) {
	if isJSON {
		printReportsJSON(reports, jsonOutput)
		return
	}

	for _, report := range reports {
		if len(report.Errors) > 0 {
			source, err := printer.ReadSourceCode(report.Filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", report.Filename), zap.Error(err))
				source = nil
			}
			fmt.Print(printer.FormatDiagnostics(report.Filename, report.Errors, source))
		}
		if report.Metrics != nil {
			fmt.Print(printer.FormatMetrics(report.Filename, *report.Metrics))
		}
	}
}

func printReportsJSON(reports []stylecore.FileReport, jsonOutput string) {
	byFile := make(map[string]stylecore.FileReport, len(reports))
	for _, report := range reports {
		byFile[report.Filename] = report
	}

	d, err := json.Marshal(byFile)
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
