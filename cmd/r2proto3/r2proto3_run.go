// Copyright (c) 2026 The r2proto3 Authors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/markcda/r2proto3/compiler"
	"github.com/markcda/r2proto3/config"
	"github.com/markcda/r2proto3/crate"
	"github.com/markcda/r2proto3/internal/logging"
)

// runOptions are the flags shared by the commands that translate a crate.
type runOptions struct {
	flagSet *pflag.FlagSet

	configPath string
	crateRoot  string
	ignoreRPC  bool
	strict     bool
	panicMode  bool
	verbose    bool
	pkg        string
}

func (opts *runOptions) register(flags *pflag.FlagSet) {
	opts.flagSet = flags
	flags.StringVar(&opts.configPath, "config", "", "Read settings from a TOML or YAML file")
	flags.StringVarP(&opts.crateRoot, "crate-root", "c", "", "Root of the crate to scan (default \".\")")
	flags.BoolVarP(&opts.ignoreRPC, "ignore-rpc", "i", false, "Do not report marked functions")
	flags.BoolVarP(&opts.strict, "strict", "s", false, "Fail on the first type that can't be translated")
	flags.BoolVar(&opts.panicMode, "panic-to-unsupported", false, "Alias of --strict")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log parsed declarations")
	flags.StringVar(&opts.pkg, "package", "", "Package name of the generated schema")
	if err := flags.MarkHidden("panic-to-unsupported"); err != nil {
		panic(err)
	}
}

func (opts *runOptions) changed(name string) bool {
	return opts.flagSet != nil && opts.flagSet.Changed(name)
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set on the command line. A positional argument names the crate
// root.
func (opts *runOptions) loadConfig(ctx context.Context, e *env, argv []string) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(ctx, e.fs, storageURL(opts.configPath)); err != nil {
			return config.Config{}, err
		}
	}

	if len(argv) > 1 {
		return config.Config{}, errors.Errorf("expected at most one crate root, got %d", len(argv))
	}
	if len(argv) == 1 {
		cfg.CrateRoot = argv[0]
	}
	if opts.changed("crate-root") {
		cfg.CrateRoot = opts.crateRoot
	}
	if opts.changed("ignore-rpc") {
		cfg.IgnoreRPC = opts.ignoreRPC
	}
	if opts.changed("strict") {
		cfg.Strict = opts.strict
	}
	if opts.changed("panic-to-unsupported") {
		cfg.Strict = opts.panicMode
	}
	if opts.changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if opts.changed("package") {
		cfg.Package = opts.pkg
	}
	return cfg, cfg.Validate()
}

// compile runs the translation of the configured crate and logs its
// diagnostics.
func compile(
	ctx context.Context,
	e *env,
	cfg config.Config,
	logger zerolog.Logger,
) (compiler.CompileResult, error) {
	dialect, err := cfg.TypeDialect()
	if err != nil {
		return compiler.CompileResult{}, err
	}

	root := storageURL(cfg.CrateRoot)
	logger.Debug().Str("crate_root", root).Msg("scanning crate")
	files, err := crate.Load(ctx, e.fs, root,
		crate.WithMarker(cfg.Marker),
		crate.WithExclude(cfg.Exclude...),
	)
	if err != nil {
		return compiler.CompileResult{}, err
	}

	result := compiler.Compile(files,
		compiler.WithStrict(cfg.Strict),
		compiler.WithIgnoreRPC(cfg.IgnoreRPC),
		compiler.WithDialect(dialect),
		compiler.WithLogger(logger),
	)
	for _, warn := range result.Warnings {
		event := logger.Warn().Uint32("code", warn.Code())
		if pos := warn.Position(); pos != "" {
			event = event.Str("position", pos)
		}
		event.Msg(warn.String())
	}
	for _, err := range result.Errors {
		event := logger.Error().Uint32("code", err.Code()).Str("entity", err.Entity())
		if pos := err.Position(); pos != "" {
			event = event.Str("position", pos)
		}
		event.Msg(err.Error())
	}
	return result, nil
}

func newLogger(e *env, cfg config.Config) zerolog.Logger {
	return logging.Runtime(e.stderr, cfg.Verbose)
}
