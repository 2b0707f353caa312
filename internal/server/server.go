// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	apexlog "github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/tfctl/linediff/internal/differ"
	"github.com/tfctl/linediff/internal/document"
	"github.com/tfctl/linediff/internal/log"
	"github.com/tfctl/linediff/internal/output"
	"github.com/tfctl/linediff/internal/version"
)

// DefaultMaxSize is the per-file upload limit when none is configured.
const DefaultMaxSize = 1 << 20

const shutdownTimeout = 5 * time.Second

// Options configures the router.
type Options struct {
	// MaxSize is the largest accepted upload, per file, in bytes.
	MaxSize int64
	// Fields selects the report field names.
	Fields output.FieldStyle
	// Converter extracts text from PDFs. Defaults to PDFToText.
	Converter Converter
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewRouter builds the gin engine serving the compare API.
func NewRouter(opts Options) *gin.Engine {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.Converter == nil {
		opts.Converter = PDFToText
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.GET("/healthz", handleHealth)
	router.POST("/api/compare", handleCompare(opts))
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, opts Options) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Infof("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(apexlog.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}

func handleCompare(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Two files plus multipart framing.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*opts.MaxSize+64<<10) //nolint:mnd

		docs := make([][]string, 2) //nolint:mnd
		for i, field := range []string{"file1", "file2"} {
			fh, err := c.FormFile(field)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					c.JSON(http.StatusBadRequest, errorResponse{
						Error: fmt.Sprintf("upload exceeds %s", humanize.IBytes(uint64(opts.MaxSize))),
					})
					return
				}
				c.JSON(http.StatusBadRequest, errorResponse{Error: "missing " + field, Details: err.Error()})
				return
			}

			lines, status, err := readUpload(c.Request.Context(), fh, opts)
			if err != nil {
				c.JSON(status, errorResponse{Error: fmt.Sprintf("%s: %s", field, err)})
				return
			}
			docs[i] = lines
		}

		report := differ.Compare(docs[0], docs[1])
		data, err := output.Encode(report, output.Options{Format: output.FormatJSON, Fields: opts.Fields})
		if err != nil {
			log.WithError(err).Error("encode failed")
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to encode report"})
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

// readUpload returns the lines of one uploaded file, or an error and the
// status code that describes it.
func readUpload(ctx context.Context, fh *multipart.FileHeader, opts Options) ([]string, int, error) {
	if fh.Size > opts.MaxSize {
		return nil, http.StatusBadRequest, fmt.Errorf("%s exceeds %s",
			humanize.IBytes(uint64(fh.Size)), humanize.IBytes(uint64(opts.MaxSize)))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	if isPDF(fh.Filename, fh.Header.Get("Content-Type")) {
		data, err = opts.Converter(ctx, data)
		if errors.Is(err, ErrNoExtractor) {
			return nil, http.StatusUnsupportedMediaType, err
		}
		if err != nil {
			return nil, http.StatusUnprocessableEntity, err
		}
	}

	lines, err := document.Split(data)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return lines, http.StatusOK, nil
}
