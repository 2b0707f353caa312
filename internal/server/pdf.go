// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoExtractor is returned when a PDF arrives and no text extractor is
// installed.
var ErrNoExtractor = errors.New("pdftotext is not available")

// Converter turns an uploaded PDF into plain text.
type Converter func(ctx context.Context, data []byte) ([]byte, error)

// PDFToText runs `pdftotext - -`, feeding the PDF on stdin.
func PDFToText(ctx context.Context, data []byte) ([]byte, error) {
	bin, err := exec.LookPath("pdftotext")
	if err != nil {
		return nil, ErrNoExtractor
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func isPDF(filename, contentType string) bool {
	if strings.HasPrefix(contentType, "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
