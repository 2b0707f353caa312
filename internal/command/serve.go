// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/linediff/internal/log"
	"github.com/tfctl/linediff/internal/meta"
	"github.com/tfctl/linediff/internal/output"
	"github.com/tfctl/linediff/internal/server"
)

// serveCommandAction runs the HTTP compare service until interrupted.
func serveCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args)

	maxSize, err := humanize.ParseBytes(cmd.String("max-size"))
	if err != nil {
		return fmt.Errorf("invalid --max-size: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cmd.String("addr"), server.Options{
		MaxSize: int64(maxSize), //nolint:gosec
		Fields:  output.FieldStyle(cmd.String("fields")),
	})
}

func serveCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "serve",
		Usage:     "serve the compare API over HTTP",
		UsageText: "linediff serve [--addr :8080] [--max-size 1MiB]",
		Flags:     serveFlags(),
		Action:    serveCommandAction,
		Metadata:  map[string]any{"meta": meta},
	}
}
