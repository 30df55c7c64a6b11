// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Cattimus/jsafe"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

// defaultConfigFile is read when -config is not given, if it exists.
const defaultConfigFile = ".jsafe.yaml"

type MainConfig struct {
	Config  string `cli:"name=config desc='read option defaults from this YAML file'"`
	Color   bool   `cli:"name=color desc='colorize output'"`
	NoColor bool   `cli:"name=no-color desc='do not colorize output'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log diagnostics'"`

	Strict bool `cli:"name=strict desc='decode input strictly, reporting errors with locations'"`
	JWCC   bool `cli:"name=jwcc desc='accept comments and trailing commas (implies -strict)'"`
	Indent int  `cli:"name=indent aliases=i desc='indentation width (default 2)'"`
	Tabs   bool `cli:"name=tabs desc='indent with tabs'"`

	file fileConfig

	Main *cli.Command
}

// fileConfig is the format of the YAML configuration file.
type fileConfig struct {
	Indent int   `yaml:"indent"`
	Tabs   bool  `yaml:"tabs"`
	Strict bool  `yaml:"strict"`
	Color  *bool `yaml:"color"`
}

// load reads the configuration file, if any.
func (cfg *MainConfig) load() error {
	path, explicit := cfg.Config, cfg.Config != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil
	} else if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg.file); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}
	theLog.Debug("loaded config", "path", path)
	return nil
}

// colorize reports whether output written to w should be colorized.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	case cfg.file.Color != nil:
		return *cfg.file.Color
	case os.Getenv("NO_COLOR") != "":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) strict() bool { return cfg.Strict || cfg.JWCC || cfg.file.Strict }

func (cfg *MainConfig) formatter() jsafe.Formatter {
	f := jsafe.Formatter{Width: cfg.Indent, UseTabs: cfg.Tabs || cfg.file.Tabs}
	if f.Width <= 0 {
		f.Width = cfg.file.Indent
	}
	if f.Width <= 0 {
		if f.UseTabs {
			f.Width = 1
		} else {
			f.Width = 2
		}
	}
	return f
}

type FmtConfig struct {
	*MainConfig

	Write bool `cli:"name=w desc='write result to the source file instead of stdout'"`
	Diff  bool `cli:"name=d desc='display a diff of the changes instead of the result'"`
	List  bool `cli:"name=l desc='list files whose formatting differs'"`

	Fmt *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Raw bool `cli:"name=r aliases=raw desc='print text results without quotes'"`

	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}
