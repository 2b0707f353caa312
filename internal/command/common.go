// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/urfave/cli/v3"

	"github.com/tfctl/linediff/internal/meta"
	"github.com/tfctl/linediff/internal/store"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// newStore builds a store from the AWS flags and the root command's stdio.
func newStore(cmd *cli.Command) *store.Store {
	root := cmd.Root()
	return store.New(
		store.WithProfile(cmd.String("profile")),
		store.WithRegion(cmd.String("region")),
		store.WithStdio(root.Reader, root.Writer),
	)
}
