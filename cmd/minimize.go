package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/obinexus/stylecore"
	"github.com/obinexus/stylecore/internal/printer"
	"github.com/obinexus/stylecore/parser"
)

var showStates bool

var minimizeCmd = &cobra.Command{
	Use:   "minimize [paths...]",
	Short: "Run the equivalence-class minimizer and print metrics",
	Run: func(cmd *cobra.Command, args []string) {
		if showStates {
			runStateMinimization()
			return
		}
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
		config.Minimize = true

		reports, err := stylecore.ProcessFiles(ctx, logger, config, args)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}
		for _, report := range reports {
			if report.Metrics != nil {
				fmt.Print(printer.FormatMetrics(report.Filename, *report.Metrics))
			}
		}
	},
}

func init() {
	minimizeCmd.Flags().BoolVar(&showStates, "states", false, "Minimize the parser's own transition graph instead of input files")
}

// runStateMinimization partitions the parser's transition graph and prints
// each equivalence class.
func runStateMinimization() {
	res, err := stylecore.MinimizeStates(parser.StateMachine())
	if err != nil {
		logger.Fatal("Failed to minimize state machine", zap.Error(err))
	}

	blocks := make([]int, 0, len(res.Partition))
	for block := range res.Partition {
		blocks = append(blocks, block)
	}
	sort.Ints(blocks)

	for _, block := range blocks {
		members := res.Partition[block]
		sort.Strings(members)
		fmt.Printf("class %d: %v\n", block, members)
	}
	fmt.Printf("%d -> %d states (ratio %.2f)\n",
		res.Metrics.OriginalCount, res.Metrics.MinimizedCount, res.Metrics.Ratio)
}
