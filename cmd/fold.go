package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/defogjs/defog"
	"github.com/defogjs/defog/internal"
	tt "github.com/defogjs/defog/internal/types"
)

var (
	ignoreRules    string
	writeInPlace   bool
	showDiff       bool
	foldJsonOutput bool
	outPath        string
)

var foldCmd = &cobra.Command{
	Use:   "fold [paths...]",
	Short: "Fold constant expressions and normalize literals",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := defog.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		factory := func() defog.FoldEngine {
			engine := defog.NewFromConfig(config)
			if ignoreRules != "" {
				for _, rule := range strings.Split(ignoreRules, ",") {
					engine.IgnoreRule(strings.TrimSpace(rule))
				}
			}
			return engine
		}

		runFold(ctx, logger, factory, args)
	},
}

func init() {
	foldCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rewrite rules to ignore")
	foldCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Rewrite files in place instead of printing")
	foldCmd.Flags().BoolVar(&showDiff, "diff", false, "Show a colorized diff instead of the folded source")
	foldCmd.Flags().BoolVar(&foldJsonOutput, "json", false, "Output reports in JSON format")
	foldCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func runFold(ctx context.Context, logger *zap.Logger, factory defog.EngineFactory, paths []string) {
	reports, err := defog.ProcessFiles(ctx, logger, factory, paths)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Filename < reports[j].Filename
	})

	if foldJsonOutput {
		printJSON(logger, reports, outPath)
		return
	}

	totalReplacements := 0
	for _, report := range reports {
		totalReplacements += report.Replacements

		switch {
		case writeInPlace:
			if report.Replacements == 0 {
				continue
			}
			if err := os.WriteFile(report.Filename, []byte(report.Output), 0o644); err != nil {
				logger.Error("Error writing file", zap.String("file", report.Filename), zap.Error(err))
				continue
			}
			fmt.Print(internal.FormatReport(report))

		case showDiff:
			original, err := os.ReadFile(report.Filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", report.Filename), zap.Error(err))
				continue
			}
			fmt.Print(internal.FormatDiff(string(original), report.Output))

		default:
			fmt.Print(report.Output)
		}
	}

	if writeInPlace {
		fmt.Print(internal.FormatSummary(len(reports), totalReplacements))
	}
}

func printJSON(logger *zap.Logger, reports []*tt.Report, jsonOutput string) {
	d, err := json.Marshal(reports)
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
