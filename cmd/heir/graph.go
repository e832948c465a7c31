package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/heir/internal/analyzer"
	"github.com/panbanda/heir/internal/output"
)

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Render the ancestor hierarchy as a tree",
		ArgsUsage: "<definition file or Python source>",
		Flags:     sessionFlags(),
		Action:    runTreeCmd,
	}
}

func runTreeCmd(c *cli.Context) error {
	sess, cfg, err := buildSession(c)
	if err != nil {
		return err
	}

	tree := analyzer.BuildTree(sess)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatText {
		output.RenderTree(formatter.Writer(), tree, formatter.Colored())
		return nil
	}
	return formatter.Output(tree)
}

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Usage:     "Render the hierarchy as a graph (Mermaid by default)",
		ArgsUsage: "<definition file or Python source>",
		Flags: append(sessionFlags(),
			&cli.BoolFlag{
				Name:  "dot",
				Usage: "Emit Graphviz DOT instead of Mermaid",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Report graph metrics instead of rendering",
			},
		),
		Action: runGraphCmd,
	}
}

func runGraphCmd(c *cli.Context) error {
	sess, cfg, err := buildSession(c)
	if err != nil {
		return err
	}

	graph := analyzer.BuildGraph(sess)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if c.Bool("metrics") {
		metrics := analyzer.Metrics(graph)
		rows := make([][]string, 0, len(metrics.NodeMetrics))
		for _, n := range metrics.NodeMetrics {
			rows = append(rows, []string{
				n.ID,
				fmt.Sprintf("%.4f", n.PageRank),
				strconv.Itoa(n.InDegree),
				strconv.Itoa(n.OutDegree),
			})
		}
		footer := []string{
			fmt.Sprintf("%d nodes", metrics.Summary.TotalNodes),
			fmt.Sprintf("%d edges", metrics.Summary.TotalEdges),
			fmt.Sprintf("%d components", metrics.Summary.Components),
			"",
		}
		return formatter.Output(output.NewTable(
			"Graph Metrics",
			[]string{"Class", "PageRank", "In", "Out"},
			rows, footer, metrics,
		))
	}

	if formatter.Format() != output.FormatText {
		return formatter.Output(graph)
	}

	rendered := graph.ToMermaid()
	if c.Bool("dot") {
		rendered = graph.ToDOT()
	}
	_, err = fmt.Fprintln(formatter.Writer(), rendered)
	return err
}
