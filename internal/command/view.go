// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/linediff/internal/differ"
	"github.com/tfctl/linediff/internal/filters"
	"github.com/tfctl/linediff/internal/log"
	"github.com/tfctl/linediff/internal/meta"
	"github.com/tfctl/linediff/internal/store"
)

// browse is swapped out in tests.
var browse = differ.Browse

// viewCommandAction opens a previously written JSON report in the viewer.
func viewCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args)

	if cmd.NArg() != 1 {
		return fmt.Errorf("view requires exactly one report location")
	}

	loc, err := store.Parse(cmd.Args().First())
	if err != nil {
		return err
	}

	data, err := newStore(cmd).Read(ctx, loc)
	if err != nil {
		return err
	}

	rows, err := differ.LoadRows(data)
	if err != nil {
		return fmt.Errorf("%s: %w", loc, err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.Root().Writer, "The documents are identical.")
		return nil
	}

	if rows = filters.Apply(rows, cmd.String("filter")); len(rows) == 0 {
		fmt.Fprintln(cmd.Root().Writer, "No changes match the filter.")
		return nil
	}

	return browse(rows)
}

func viewCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "browse a saved JSON report",
		UsageText: "linediff view [--filter spec] <report>",
		Flags:     viewFlags(),
		Action:    viewCommandAction,
		Metadata:  map[string]any{"meta": meta},
	}
}
