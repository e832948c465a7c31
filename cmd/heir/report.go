package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/heir/internal/analyzer"
	"github.com/panbanda/heir/internal/output"
	"github.com/panbanda/heir/pkg/models"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Run every smell detector and produce a combined report",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	sess, cfg, err := buildSession(c)
	if err != nil {
		return err
	}

	report, err := analyzer.NewDetector(sess).Report()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&reportView{report})
}

// reportView renders a HierarchyReport as sectioned tables.
type reportView struct {
	report *models.HierarchyReport
}

func (v *reportView) RenderData() any { return v.report }

func (v *reportView) RenderText(w io.Writer, colored bool) error {
	heading := func(s string) {
		if colored {
			color.New(color.FgCyan, color.Bold).Fprintln(w, s)
		} else {
			fmt.Fprintln(w, s)
		}
	}

	heading(fmt.Sprintf("Hierarchy Report: %s", v.report.Target))
	fmt.Fprintf(w, "Classes: %d  Paths: %d\n\n", v.report.Summary.Classes, v.report.Summary.Paths)

	for _, t := range v.tables() {
		if err := t.RenderText(w, colored); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (v *reportView) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "# Hierarchy Report: %s\n\n", v.report.Target)
	fmt.Fprintf(w, "Classes: %d, Paths: %d\n\n", v.report.Summary.Classes, v.report.Summary.Paths)

	for _, t := range v.tables() {
		if err := t.RenderMarkdown(w); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (v *reportView) tables() []*output.Table {
	return []*output.Table{
		overriddenTable(v.report.Overridden),
		unreachableTable(v.report.Unreachable),
		multipleInheritanceTable(v.report.MultipleInheritance),
		exportedTable(v.report.Exported),
	}
}

func overriddenTable(methods []models.OverriddenMethod) *output.Table {
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, []string{m.Name, strings.Join(m.Classes, ", ")})
	}
	return output.NewTable(
		fmt.Sprintf("Overridden Methods (%d)", len(methods)),
		[]string{"Method", "Defined In"},
		rows, nil, methods,
	)
}

func unreachableTable(methods []models.UnreachableMethod) *output.Table {
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, []string{m.Class, m.Method})
	}
	return output.NewTable(
		fmt.Sprintf("Unreachable Methods (%d)", len(methods)),
		[]string{"Class", "Method"},
		rows, nil, methods,
	)
}

func multipleInheritanceTable(classes []string) *output.Table {
	rows := make([][]string, 0, len(classes))
	for _, c := range classes {
		rows = append(rows, []string{c})
	}
	return output.NewTable(
		fmt.Sprintf("Multiple Inheritance (%d)", len(classes)),
		[]string{"Class"},
		rows, nil, classes,
	)
}

func exportedTable(methods []models.ExportedMethod) *output.Table {
	rows := make([][]string, 0, len(methods))
	for _, m := range methods {
		rows = append(rows, []string{m.Class, m.Method, m.Origin})
	}
	return output.NewTable(
		fmt.Sprintf("Exported Methods (%d)", len(methods)),
		[]string{"Class", "Method", "Origin"},
		rows, nil, methods,
	)
}
