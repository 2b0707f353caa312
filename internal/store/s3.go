// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/linediff/internal/log"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// options holds optional overrides for the Store.
type options struct {
	profile string
	region  string
	client  S3API
	stdin   io.Reader
	stdout  io.Writer
}

// Option customizes a Store. Without options, S3 access inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithS3Client injects a ready S3 client, bypassing config loading.
func WithS3Client(client S3API) Option {
	return func(o *options) { o.client = client }
}

// WithStdio replaces the streams used for "-" locations.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.stdin = in
		o.stdout = out
	}
}

// loadOptions turns the Store options into AWS config load options.
func (o options) loadOptions() []func(*config.LoadOptions) error {
	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	return loadOpts
}

func (s *Store) newS3(ctx context.Context) (S3API, error) {
	log.Debugf("loading aws config: profile=%s region=%s", s.opts.profile, s.opts.region)

	cfg, err := config.LoadDefaultConfig(ctx, s.opts.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3v2.NewFromConfig(cfg), nil
}

func (s *Store) readS3(ctx context.Context, loc Location) ([]byte, error) {
	svc, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	}
	if loc.VersionID != "" {
		input.VersionId = awsv2.String(loc.VersionID)
	}

	result, err := svc.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get S3 object %s: %w", loc, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body %s: %w", loc, err)
	}
	return data, nil
}

func (s *Store) writeS3(ctx context.Context, loc Location, data []byte) error {
	svc, err := s.client(ctx)
	if err != nil {
		return err
	}

	_, err = svc.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        awsv2.String(loc.Bucket),
		Key:           awsv2.String(loc.Key),
		Body:          bytes.NewReader(data),
		ContentLength: awsv2.Int64(int64(len(data))),
		ContentType:   awsv2.String(contentType(loc.Key)),
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object %s: %w", loc, err)
	}
	return nil
}

func contentType(key string) string {
	switch {
	case strings.HasSuffix(key, ".json"):
		return "application/json; charset=utf-8"
	case strings.HasSuffix(key, ".yaml"), strings.HasSuffix(key, ".yml"):
		return "application/yaml; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
