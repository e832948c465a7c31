package main

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/heir/internal/analyzer"
	"github.com/panbanda/heir/internal/hierarchy"
	"github.com/panbanda/heir/internal/output"
	"github.com/panbanda/heir/internal/progress"
	"github.com/panbanda/heir/pkg/models"
)

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Analyze every root class of a namespace",
		ArgsUsage: "<definition file or Python source>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "namespace",
				Aliases:  []string{"n"},
				Usage:    "Regex selecting the classes to analyze",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent analysis sessions (0 = one per CPU)",
			},
			&cli.StringFlag{
				Name:  "ignore",
				Usage: "Regex of parent classes to exclude from traversal",
			},
			&cli.BoolFlag{
				Name:  "universal-root",
				Usage: "Attach parentless classes to a synthetic universal root",
			},
		},
		Action: runBatchCmd,
	}
}

func runBatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	prov, _, err := buildProvider(c, cfg)
	if err != nil {
		return err
	}

	lister, ok := prov.(interface{ Classes() []string })
	if !ok {
		return errors.New("provider does not enumerate classes")
	}

	namespace, err := regexp.Compile(c.String("namespace"))
	if err != nil {
		return fmt.Errorf("%w: invalid namespace pattern: %v", hierarchy.ErrInvalidArgument, err)
	}

	sessionOpts := []hierarchy.Option{}
	ignore := cfg.Analysis.Ignore
	if c.IsSet("ignore") {
		ignore = c.String("ignore")
	}
	if ignore != "" {
		sessionOpts = append(sessionOpts, hierarchy.WithIgnorePattern(ignore))
	}
	if c.Bool("universal-root") || cfg.Analysis.UniversalRoot {
		sessionOpts = append(sessionOpts, hierarchy.WithUniversalRoot(cfg.Analysis.UniversalRootName))
	}

	workers := cfg.Batch.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	batch := analyzer.NewBatch(prov,
		analyzer.WithWorkers(workers),
		analyzer.WithSessionOptions(sessionOpts...))

	classes := lister.Classes()
	roots := batch.Roots(namespace, classes)

	var onProgress func()
	if c.String("format") == "text" && c.String("output") == "" {
		tracker := progress.NewTracker("Analyzing hierarchies", len(roots))
		defer tracker.Finish()
		onProgress = tracker.Tick
	}

	report, err := batch.Analyze(namespace, classes, onProgress)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&batchView{report})
}

// batchView renders a BatchReport as one summary table plus per-root
// smell counts.
type batchView struct {
	report *models.BatchReport
}

func (v *batchView) RenderData() any { return v.report }

func (v *batchView) RenderText(w io.Writer, colored bool) error {
	if colored {
		color.New(color.FgCyan, color.Bold).Fprintf(w, "Batch Report: %s\n", v.report.Namespace)
	} else {
		fmt.Fprintf(w, "Batch Report: %s\n", v.report.Namespace)
	}
	fmt.Fprintf(w, "Roots: %s\n\n", strings.Join(v.report.Roots, ", "))

	if err := v.table().RenderText(w, colored); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func (v *batchView) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "# Batch Report: %s\n\n", v.report.Namespace)
	return v.table().RenderMarkdown(w)
}

func (v *batchView) table() *output.Table {
	rows := make([][]string, 0, len(v.report.Reports))
	for _, r := range v.report.Reports {
		rows = append(rows, []string{
			r.Target,
			fmt.Sprintf("%d", r.Summary.Classes),
			fmt.Sprintf("%d", r.Summary.OverriddenMethods),
			fmt.Sprintf("%d", r.Summary.UnreachableMethods),
			fmt.Sprintf("%d", r.Summary.MultipleInheritance),
			fmt.Sprintf("%d", r.Summary.ExportedMethods),
		})
	}
	return output.NewTable(
		fmt.Sprintf("Analyzed Roots (%d)", len(rows)),
		[]string{"Root", "Classes", "Overridden", "Unreachable", "Multi-Inherit", "Exported"},
		rows, nil, v.report,
	)
}
