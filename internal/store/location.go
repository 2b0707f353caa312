// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind says where a Location lives.
type Kind int

const (
	KindFile Kind = iota
	KindStdio
	KindS3
)

// Location is a parsed document or report address.
type Location struct {
	Kind Kind
	Raw  string

	// Path is set for KindFile.
	Path string

	// Bucket, Key and VersionID are set for KindS3.
	Bucket    string
	Key       string
	VersionID string
}

// ErrEmptyLocation is returned by Parse for an empty string.
var ErrEmptyLocation = errors.New("empty location")

// Parse classifies raw. "-" is stdin or stdout depending on use, "s3://" URIs
// address objects (an optional versionId query selects an object version), and
// anything else is a local path.
func Parse(raw string) (Location, error) {
	switch {
	case raw == "":
		return Location{}, ErrEmptyLocation
	case raw == "-":
		return Location{Kind: KindStdio, Raw: raw}, nil
	case strings.HasPrefix(raw, "s3://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("invalid s3 location %q: %w", raw, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", raw)
		}
		return Location{
			Kind:      KindS3,
			Raw:       raw,
			Bucket:    u.Host,
			Key:       key,
			VersionID: u.Query().Get("versionId"),
		}, nil
	default:
		return Location{Kind: KindFile, Raw: raw, Path: raw}, nil
	}
}

// String returns the location as the user wrote it.
func (l Location) String() string {
	return l.Raw
}
