// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store reads documents from and writes reports to local files, the
// standard streams and S3 objects.
package store
