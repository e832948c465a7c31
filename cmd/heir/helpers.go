package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/heir/internal/hierarchy"
	"github.com/panbanda/heir/internal/output"
	"github.com/panbanda/heir/pkg/config"
	"github.com/panbanda/heir/pkg/provider"
)

// sessionFlags are shared by every command that analyzes a single class.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "target",
			Aliases:  []string{"t"},
			Usage:    "Class to analyze",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "ignore",
			Usage: "Regex of parent classes to exclude from traversal",
		},
		&cli.BoolFlag{
			Name:  "universal-root",
			Usage: "Attach parentless classes to a synthetic universal root",
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// buildProvider selects a hierarchy provider from the positional input
// argument: Python files and directories are parsed with tree-sitter,
// anything else is loaded as a declarative definition document.
func buildProvider(c *cli.Context, cfg *config.Config) (provider.Provider, string, error) {
	input := c.Args().First()
	if input == "" {
		return nil, "", errors.New("input path required (definition file or Python source)")
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() || strings.EqualFold(filepath.Ext(input), ".py") {
		p, err := provider.NewPythonProvider([]string{input},
			provider.WithMaxFileSize(cfg.Python.MaxFileSize),
			provider.WithIncludePrivate(cfg.Python.IncludePrivate))
		if err != nil {
			return nil, "", err
		}
		return p, "", nil
	}

	def, err := provider.LoadDefinition(input)
	if err != nil {
		return nil, "", err
	}
	return provider.NewStaticProvider(def), def.Fingerprint, nil
}

func buildSession(c *cli.Context) (*hierarchy.Session, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	prov, fingerprint, err := buildProvider(c, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []hierarchy.Option{}
	if fingerprint != "" {
		opts = append(opts, hierarchy.WithFingerprint(fingerprint))
	}

	ignore := cfg.Analysis.Ignore
	if c.IsSet("ignore") {
		ignore = c.String("ignore")
	}
	if ignore != "" {
		opts = append(opts, hierarchy.WithIgnorePattern(ignore))
	}

	if c.Bool("universal-root") || cfg.Analysis.UniversalRoot {
		opts = append(opts, hierarchy.WithUniversalRoot(cfg.Analysis.UniversalRootName))
	}

	sess, err := hierarchy.NewSession(prov, c.String("target"), opts...)
	if err != nil {
		return nil, nil, err
	}
	return sess, cfg, nil
}

// newFormatter builds a formatter from the format/output flags, falling
// back to the configured output section when the flags are unset.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if !c.IsSet("format") && cfg != nil && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	colored := cfg == nil || cfg.Output.Color
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), colored)
}
