// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/Cattimus/jsafe/cursor"
	"github.com/Cattimus/jsafe/path"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	expr := args[0]
	if expr == "" || expr[0] != '$' {
		expr = "$" + expr
	}
	p, err := path.Parse(expr)
	if err != nil {
		return fmt.Errorf("%w: invalid path %q: %w", cli.ErrUsage, args[0], err)
	}
	for _, in := range inputs(args[1:]) {
		doc, err := cfg.loadDoc(cc, in, false)
		if err != nil {
			return err
		}
		v, err := cursor.Find(doc, p...)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", in, p, err)
		}
		if err := cfg.writeValue(cc.Out, v, cfg.strict()); err != nil {
			return err
		}
	}
	return nil
}
