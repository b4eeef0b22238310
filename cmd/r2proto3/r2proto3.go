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
	stdflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/viant/afs"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// env is what a command may touch outside its own flags.
type env struct {
	fs     afs.Service
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx := context.Background()
	os.Exit(execute(ctx, os.Args[1:], &env{
		fs:     afs.New(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}))
}

func execute(ctx context.Context, args []string, e *env) int {
	exitCode := 0
	rootCmd := &cobra.Command{
		Use:   "r2proto3 [options] COMMAND",
		Short: "Translate marked Rust types into a proto3 schema",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(e.stderr, rootCmd.UsageString())
		exitCode = 1
		return nil
	}

	commands := []command{
		&cmdGenerate{env: e},
		&cmdCheck{env: e},
		&cmdCodegen{env: e},
	}
	for _, cmd := range commands {
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				exitCode = cmd.run(ctx, args)
				return nil
			},
		}
		rootCmd.AddCommand(cobraCmd)
		cmd.flags(cobraCmd.Flags())
	}

	rootCmd.Flags().AddGoFlagSet(stdflag.CommandLine)
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	if _, err := rootCmd.ExecuteC(); err != nil {
		fmt.Fprintln(e.stderr, err)
		return 1
	}
	return exitCode
}
