// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/Cattimus/jsafe"
	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, an expression", cli.ErrUsage)
	}
	prog, err := expr.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid expression: %w", cli.ErrUsage, err)
	}
	for _, in := range inputs(args[1:]) {
		doc, err := cfg.loadDoc(cc, in, true)
		if err != nil {
			return err
		}
		out, err := expr.Run(prog, map[string]any{"doc": doc.Interface()})
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		if s, ok := out.(string); ok && cfg.Raw {
			fmt.Fprintln(cc.Out, s)
			continue
		}
		v, err := jsafe.FromInterface(out)
		if err != nil {
			return fmt.Errorf("%s: result: %w", in, err)
		}
		if err := cfg.writeValue(cc.Out, v, true); err != nil {
			return err
		}
	}
	return nil
}
