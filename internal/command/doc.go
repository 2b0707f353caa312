// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI for linediff. The root command compares two
// documents; serve and view are subcommands. It wires flags, validators and
// actions.
package command
