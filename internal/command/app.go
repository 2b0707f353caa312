// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/linediff/internal/config"
	"github.com/tfctl/linediff/internal/meta"
)

// InitApp builds the root command. The root action compares documents; the
// serve and view subcommands are dispatched by name.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The word after the binary selects the config namespace. Anything that
	// is not a subcommand is a compare invocation.
	ns := "compare"
	if len(args) > 1 && (args[1] == "serve" || args[1] == "view") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	meta := meta.Meta{
		Args:        args,
		Config:      config.Config,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:            "linediff",
		Usage:           "line-level document differ",
		UsageText:       "linediff [flags] <file1_path> <file2_path> <output_json_path>",
		HideHelpCommand: true,
		Flags:           compareFlags(ns),
		Action:          compareCommandAction,
		Metadata:        map[string]any{"meta": meta},
	}

	app.Commands = append(app.Commands,
		serveCommandBuilder(meta),
		viewCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	sortFlags(app)
	for _, cmd := range app.Commands {
		sortFlags(cmd)
	}

	return app, nil
}

func sortFlags(cmd *cli.Command) {
	sort.Slice(cmd.Flags, func(i, j int) bool {
		return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
	})
}
