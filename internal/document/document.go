// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/tfctl/linediff/internal/log"
	"github.com/tfctl/linediff/internal/store"
)

// Reader is the part of store.Store the loader needs.
type Reader interface {
	Read(ctx context.Context, loc store.Location) ([]byte, error)
}

// Split validates data as UTF-8 and breaks it into lines. "\r\n", "\r" and
// "\n" all terminate a line. Each line loses its terminator and then any
// trailing form feeds; nothing else is normalized. A trailing terminator does
// not produce an extra empty line, and empty input yields no lines.
func Split(data []byte) ([]string, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return nil, fmt.Errorf("document is not valid UTF-8: %w", err)
	}

	text := string(data)
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		end := strings.IndexAny(text, "\r\n")
		if end < 0 {
			lines = append(lines, strings.TrimRight(text, "\f"))
			break
		}

		lines = append(lines, strings.TrimRight(text[:end], "\f"))

		next := end + 1
		if text[end] == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		text = text[next:]
	}

	return lines, nil
}

// Join is the inverse of Split for already-normalized lines.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// Load reads the document at loc and splits it into lines.
func Load(ctx context.Context, r Reader, loc store.Location) ([]string, error) {
	data, err := r.Read(ctx, loc)
	if err != nil {
		return nil, err
	}

	lines, err := Split(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}

	log.Debugf("document loaded: loc=%s bytes=%d lines=%d", loc, len(data), len(lines))
	return lines, nil
}
