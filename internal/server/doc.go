// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package server exposes the line differ over HTTP. Two uploaded documents
// are compared and the report is returned as JSON.
package server
