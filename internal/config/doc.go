// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the linediff YAML configuration and offers typed,
// dotted-key getters over it. The file is taken from LINEDIFF_CFG_FILE or
// <UserConfigDir>/linediff.yaml. A missing file is not an error for callers of
// the getters; they simply see defaults.
package config
