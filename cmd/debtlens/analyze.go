package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/debtlens/debtlens/internal/output"
	"github.com/debtlens/debtlens/internal/progress"
	"github.com/debtlens/debtlens/internal/scanner"
	"github.com/debtlens/debtlens/pkg/analyzer"
	"github.com/debtlens/debtlens/pkg/models"
)

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Profile files or directories for technical debt",
		ArgsUsage: "[path...]  (no args or \"-\" reads stdin)",
		Action:    runAnalyze,
	}
}

// fileProfile pairs a path with its analysis for the multi-file table.
type fileProfile struct {
	Path   string                 `json:"path" toon:"path"`
	Result *models.AnalysisResult `json:"result" toon:"result"`
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := buildLogger(c)
	defer logger.Sync() //nolint:errcheck

	engine := analyzer.New(cfg, analyzer.WithLogger(logger))

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	args := c.Args().Slice()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		code, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		result, err := engine.Analyze(c.Context, string(code))
		if err != nil {
			return err
		}
		return formatter.Output(&output.ResultView{Label: "stdin", Result: result})
	}

	files, err := scanner.New(cfg).ScanPaths(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	if len(files) == 1 {
		code, err := os.ReadFile(files[0])
		if err != nil {
			return err
		}
		result, err := engine.Analyze(c.Context, string(code))
		if err != nil {
			return err
		}
		return formatter.Output(&output.ResultView{Label: files[0], Result: result})
	}

	profiles := analyzeFiles(c, engine, files)
	return formatter.Output(profilesTable(profiles))
}

// analyzeFiles profiles every file in parallel. Unreadable files are
// skipped; the engine itself never fails on file content.
func analyzeFiles(c *cli.Context, engine *analyzer.Analyzer, files []string) []fileProfile {
	tracker := progress.NewTracker("Analyzing...", len(files))
	defer tracker.Finish()

	profiles := make([]fileProfile, 0, len(files))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(runtime.NumCPU() * 2)
	for _, path := range files {
		p.Go(func() {
			defer tracker.Tick()

			code, err := os.ReadFile(path)
			if err != nil {
				return
			}
			result, err := engine.Analyze(c.Context, string(code))
			if err != nil {
				return
			}

			mu.Lock()
			profiles = append(profiles, fileProfile{Path: path, Result: result})
			mu.Unlock()
		})
	}
	p.Wait()

	// Worst first: the debt ratio is a health score, so ascending order
	// surfaces the least healthy files at the top.
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Result.TechnicalDebtRatio != profiles[j].Result.TechnicalDebtRatio {
			return profiles[i].Result.TechnicalDebtRatio < profiles[j].Result.TechnicalDebtRatio
		}
		return profiles[i].Path < profiles[j].Path
	})

	return profiles
}

func profilesTable(profiles []fileProfile) *output.Table {
	rows := make([][]string, 0, len(profiles))
	ratios := make([]float64, 0, len(profiles))

	for _, p := range profiles {
		r := p.Result
		rows = append(rows, []string{
			p.Path,
			fmt.Sprintf("%d", r.CyclomaticComplexity),
			fmt.Sprintf("%.2f", r.DuplicationRatio),
			fmt.Sprintf("%d", r.SmellsCount),
			fmt.Sprintf("%.2f", r.TechnicalDebtRatio),
			string(r.Assessment),
		})
		ratios = append(ratios, r.TechnicalDebtRatio)
	}

	sorted := append([]float64(nil), ratios...)
	sort.Float64s(sorted)

	var footer []string
	if len(sorted) > 0 {
		footer = []string{
			"Summary", "", "",
			fmt.Sprintf("mean %.2f", stat.Mean(ratios, nil)),
			fmt.Sprintf("p50 %.2f", stat.Quantile(0.5, stat.Empirical, sorted, nil)),
			fmt.Sprintf("p90 %.2f", stat.Quantile(0.9, stat.Empirical, sorted, nil)),
		}
	}

	return output.NewTable(
		"Technical Debt Profile",
		[]string{"File", "Complexity", "Duplication", "Smells", "Debt", "Assessment"},
		rows,
		footer,
		profiles,
	)
}
