// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ aligns two documents line by line and projects the alignment
// into two annotated views and a flat diff table for side-by-side rendering.
package differ
