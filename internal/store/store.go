// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tfctl/linediff/internal/log"
)

// Store reads and writes Locations. The S3 client is only built the first time
// an S3 location is touched.
type Store struct {
	opts   options
	stdin  io.Reader
	stdout io.Writer

	once  sync.Once
	s3    S3API
	s3Err error
}

// New returns a Store using the process' standard streams.
func New(opts ...Option) *Store {
	s := &Store{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	if s.opts.stdin != nil {
		s.stdin = s.opts.stdin
	}
	if s.opts.stdout != nil {
		s.stdout = s.opts.stdout
	}
	return s
}

// Read returns the full contents at loc.
func (s *Store) Read(ctx context.Context, loc Location) ([]byte, error) {
	log.Debugf("store read: loc=%s", loc)

	switch loc.Kind {
	case KindStdio:
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	case KindS3:
		return s.readS3(ctx, loc)
	default:
		info, err := os.Stat(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", loc, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("failed to read %s: is a directory", loc)
		}
		data, err := os.ReadFile(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", loc, err)
		}
		return data, nil
	}
}

// Write stores data at loc, replacing whatever was there.
func (s *Store) Write(ctx context.Context, loc Location, data []byte) error {
	log.Debugf("store write: loc=%s bytes=%d", loc, len(data))

	switch loc.Kind {
	case KindStdio:
		if _, err := s.stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		return nil
	case KindS3:
		return s.writeS3(ctx, loc, data)
	default:
		if err := os.WriteFile(loc.Path, data, 0o644); err != nil { //nolint:mnd
			return fmt.Errorf("failed to write %s: %w", loc, err)
		}
		return nil
	}
}

// client returns the S3 client, building it on first use.
func (s *Store) client(ctx context.Context) (S3API, error) {
	s.once.Do(func() {
		if s.opts.client != nil {
			s.s3 = s.opts.client
			return
		}
		s.s3, s.s3Err = s.newS3(ctx)
	})
	return s.s3, s.s3Err
}
