// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/Cattimus/jsafe"
	"github.com/scott-cotton/cli"

	jsonpatch "github.com/evanphx/json-patch"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires one argument, a patch file", cli.ErrUsage)
	}
	pdoc, err := cfg.loadDoc(cc, args[0], true)
	if err != nil {
		return err
	}
	ops, err := jsonpatch.DecodePatch([]byte(pdoc.JSON()))
	if err != nil {
		return fmt.Errorf("%s: invalid patch: %w", args[0], err)
	}
	return applyEach(cfg.MainConfig, cc, args[1:], ops.Apply)
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires one argument, a merge patch file", cli.ErrUsage)
	}
	pdoc, err := cfg.loadDoc(cc, args[0], true)
	if err != nil {
		return err
	}
	mp := []byte(pdoc.JSON())
	return applyEach(cfg.MainConfig, cc, args[1:], func(doc []byte) ([]byte, error) {
		return jsonpatch.MergePatch(doc, mp)
	})
}

// applyEach applies f to the standard JSON encoding of each input document,
// and writes the results.
func applyEach(cfg *MainConfig, cc *cli.Context, args []string, f func([]byte) ([]byte, error)) error {
	for _, in := range inputs(args) {
		doc, err := cfg.loadDoc(cc, in, true)
		if err != nil {
			return err
		}
		out, err := f([]byte(doc.JSON()))
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		v, err := jsafe.DecodeString(string(out))
		if err != nil {
			return fmt.Errorf("%s: decode result: %w", in, err)
		}
		if err := cfg.writeValue(cc.Out, v, true); err != nil {
			return err
		}
	}
	return nil
}
