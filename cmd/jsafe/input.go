// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/Cattimus/jsafe"
	"github.com/scott-cotton/cli"
)

// inputs returns the input files named by args, or standard input.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// readInput reads the contents of the named file, where "-" denotes
// standard input.
func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader = cc.In
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return data, nil
}

// decode parses data as a single JSON value. Parsing is lax unless strict
// is set or the options in cfg call for strict decoding.
func (cfg *MainConfig) decode(name string, data []byte, strict bool) (*jsafe.Value, error) {
	if !strict && !cfg.strict() {
		v := jsafe.Parse(string(data))
		if !v.IsValid() {
			return nil, fmt.Errorf("%s: invalid JSON (use -strict for details)", name)
		}
		return v, nil
	}
	if !cfg.JWCC {
		v, err := jsafe.DecodeString(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return v, nil
	}
	d := jsafe.NewDecoder(bytes.NewReader(data))
	d.AllowJWCC(true)
	v, err := d.Decode()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: no input", name)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// loadDoc reads and decodes the named input. See decode.
func (cfg *MainConfig) loadDoc(cc *cli.Context, path string, strict bool) (*jsafe.Value, error) {
	data, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	return cfg.decode(path, data, strict)
}
