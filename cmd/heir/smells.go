package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/heir/internal/analyzer"
	"github.com/panbanda/heir/internal/output"
)

func overriddenCmd() *cli.Command {
	return &cli.Command{
		Name:      "overridden",
		Usage:     "List methods defined in more than one class",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runOverriddenCmd,
	}
}

func runOverriddenCmd(c *cli.Context) error {
	return runDetectorCmd(c, func(d *analyzer.Detector) *output.Table {
		return overriddenTable(d.OverriddenMethods())
	})
}

func unreachableCmd() *cli.Command {
	return &cli.Command{
		Name:      "unreachable",
		Usage:     "List overridden implementations the resolution order never reaches",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runUnreachableCmd,
	}
}

func runUnreachableCmd(c *cli.Context) error {
	return runDetectorCmd(c, func(d *analyzer.Detector) *output.Table {
		return unreachableTable(d.Unreachable())
	})
}

func miCmd() *cli.Command {
	return &cli.Command{
		Name:      "mi",
		Usage:     "List classes inheriting from more than one parent",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runMICmd,
	}
}

func runMICmd(c *cli.Context) error {
	return runDetectorCmd(c, func(d *analyzer.Detector) *output.Table {
		return multipleInheritanceTable(d.MultipleInheritance())
	})
}

func exportedCmd() *cli.Command {
	return &cli.Command{
		Name:      "exported",
		Usage:     "List imported functions visible as methods",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runExportedCmd,
	}
}

func runExportedCmd(c *cli.Context) error {
	return runDetectorCmd(c, func(d *analyzer.Detector) *output.Table {
		return exportedTable(d.ExportedMethods())
	})
}

func classesCmd() *cli.Command {
	return &cli.Command{
		Name:      "classes",
		Usage:     "List every class of the hierarchy in discovery order",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runClassesCmd,
	}
}

func runClassesCmd(c *cli.Context) error {
	sess, cfg, err := buildSession(c)
	if err != nil {
		return err
	}

	type classInfo struct {
		Name    string   `json:"name"`
		Parents []string `json:"parents"`
		Methods int      `json:"methods"`
		Visits  int      `json:"visits"`
	}

	rows := [][]string{}
	data := []classInfo{}
	for _, class := range sess.ClassesList() {
		parents, _ := sess.ParentsList(class)
		methods, _ := sess.MethodsCount(class)
		visits, _ := sess.VisitCount(class)
		rows = append(rows, []string{
			class,
			strings.Join(parents, ", "),
			strconv.Itoa(methods),
			strconv.Itoa(visits),
		})
		data = append(data, classInfo{Name: class, Parents: parents, Methods: methods, Visits: visits})
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewTable(
		fmt.Sprintf("Classes (%d)", len(rows)),
		[]string{"Class", "Parents", "Methods", "Visits"},
		rows, nil, data,
	))
}

func pathsCmd() *cli.Command {
	return &cli.Command{
		Name:      "paths",
		Usage:     "List every inheritance path in resolution order",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runPathsCmd,
	}
}

func runPathsCmd(c *cli.Context) error {
	sess, cfg, err := buildSession(c)
	if err != nil {
		return err
	}

	paths := sess.Paths()
	rows := make([][]string, 0, len(paths))
	for i, p := range paths {
		rows = append(rows, []string{strconv.Itoa(i + 1), strings.Join(p, " -> ")})
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewTable(
		fmt.Sprintf("Inheritance Paths (%d)", len(paths)),
		[]string{"#", "Path"},
		rows, nil, paths,
	))
}

// runDetectorCmd handles the common build-analyze-format cycle of the
// single-smell commands.
func runDetectorCmd(c *cli.Context, table func(*analyzer.Detector) *output.Table) error {
	sess, cfg, err := buildSession(c)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(table(analyzer.NewDetector(sess)))
}
