// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/linediff/internal/cacheutil"
	"github.com/tfctl/linediff/internal/config"
	"github.com/tfctl/linediff/internal/differ"
	"github.com/tfctl/linediff/internal/document"
	"github.com/tfctl/linediff/internal/log"
	"github.com/tfctl/linediff/internal/output"
	"github.com/tfctl/linediff/internal/store"
	"github.com/tfctl/linediff/internal/version"
)

// UsageText is printed when the positional arguments are wrong.
const UsageText = "Usage: linediff <file1_path> <file2_path> <output_json_path>"

// UsageError reports positional arguments that cannot be used as given.
type UsageError struct {
	Args []string
	// Reason is set when the count is right but the combination is not.
	Reason string
}

func (e *UsageError) Error() string {
	if e.Reason != "" {
		return UsageText + "\n" + e.Reason
	}
	return UsageText
}

// cacheDevBuilds lets development builds use the report cache. Their version
// never changes, so a cached report could outlive the code that produced it.
var cacheDevBuilds = false

// reportCacheDir is the cache subdirectory holding encoded reports.
const reportCacheDir = "reports"

// compareCommandAction is the action handler for the root command. It reads
// both documents, compares them and writes the encoded report.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.Args)

	if cmd.Bool("schema") {
		output.DumpSchema(output.FieldStyle(cmd.String("fields")), cmd.Root().Writer)
		return nil
	}

	if cmd.NArg() != 3 { //nolint:mnd
		return &UsageError{Args: cmd.Args().Slice()}
	}

	locs := make([]store.Location, 3) //nolint:mnd
	for i, raw := range cmd.Args().Slice() {
		loc, err := store.Parse(raw)
		if err != nil {
			return err
		}
		locs[i] = loc
	}

	if locs[0].Kind == store.KindStdio && locs[1].Kind == store.KindStdio {
		return &UsageError{Args: cmd.Args().Slice(), Reason: "only one input can be read from stdin"}
	}

	st := newStore(cmd)

	// Both inputs are read before the output is touched.
	doc1, err := document.Load(ctx, st, locs[0])
	if err != nil {
		return err
	}
	doc2, err := document.Load(ctx, st, locs[1])
	if err != nil {
		return err
	}

	opts := output.Options{
		Format: output.Format(cmd.String("format")),
		Fields: output.FieldStyle(cmd.String("fields")),
	}
	if opts.Format == output.FormatText && locs[2].Kind == store.KindStdio {
		opts.Color = isTerminal(cmd.Root().Writer)
	}

	data, summary, err := buildReport(doc1, doc2, opts)
	if err != nil {
		return err
	}

	if err := st.Write(ctx, locs[2], data); err != nil {
		log.Debugf("write failed: err=%v", err)
		return err
	}

	if hours, _ := config.GetInt("cache.clean", 0); hours > 0 {
		if err := cacheutil.Purge(hours); err != nil {
			log.Debugf("cache purge failed: err=%v", err)
		}
	}

	if locs[2].Kind == store.KindStdio {
		return nil
	}

	fmt.Fprintf(cmd.Root().Writer, "Comparison saved to %s (%s, %s)\n",
		locs[2], humanize.Bytes(uint64(len(data))), summary)
	return nil
}

// buildReport returns the encoded report and a short change summary. Coloured
// output bypasses the cache since it depends on the terminal, and so do
// development builds unless cacheDevBuilds is set.
func buildReport(doc1, doc2 []string, opts output.Options) ([]byte, string, error) {
	useCache := cacheutil.Enabled() && !opts.Color &&
		(version.Version != version.Dev || cacheDevBuilds)
	key := cacheutil.DigestKey(
		[]string{
			version.Version, string(opts.Format), string(opts.Fields),
			strconv.Itoa(len(doc1)), strconv.Itoa(len(doc2)),
		},
		[]byte(document.Join(doc1)),
		[]byte(document.Join(doc2)),
	)

	if useCache {
		if entry, ok := cacheutil.Read([]string{reportCacheDir}, key); ok {
			log.Debugf("report cache hit: key=%s", key)
			return entry.Data, "cached", nil
		}
	}

	report := differ.Compare(doc1, doc2)
	data, err := output.Encode(report, opts)
	if err != nil {
		return nil, "", err
	}

	if useCache {
		if err := cacheutil.Write([]string{reportCacheDir}, key, data); err != nil {
			log.Debugf("report cache write failed: err=%v", err)
		}
	}

	return data, summarize(report.Stats()), nil
}

func summarize(s differ.Stats) string {
	if s.Changes() == 1 {
		return "1 change"
	}
	return fmt.Sprintf("%d changes", s.Changes())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
