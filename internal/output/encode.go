// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/tfctl/linediff/internal/differ"
)

// Format selects the encoding of a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Formats lists the accepted --format values.
var Formats = []string{string(FormatJSON), string(FormatYAML), string(FormatText)}

// FieldStyle selects the key names of the diff table's text columns.
type FieldStyle string

const (
	// FieldsOriginal keeps the ima_text/assuta_text names existing consumers
	// read.
	FieldsOriginal FieldStyle = "original"
	// FieldsGeneric uses doc1_text/doc2_text.
	FieldsGeneric FieldStyle = "generic"
)

// FieldStyles lists the accepted --fields values.
var FieldStyles = []string{string(FieldsOriginal), string(FieldsGeneric)}

// Options controls Encode.
type Options struct {
	Format Format
	Fields FieldStyle
	// Color enables ANSI styling in text output.
	Color bool
}

type genericRow struct {
	ID       int    `json:"id" yaml:"id"`
	Doc1Text string `json:"doc1_text" yaml:"doc1_text"`
	Doc2Text string `json:"doc2_text" yaml:"doc2_text"`
}

type genericReport struct {
	Doc1  []differ.Segment `json:"doc1_segments" yaml:"doc1_segments"`
	Doc2  []differ.Segment `json:"doc2_segments" yaml:"doc2_segments"`
	Table []genericRow     `json:"diff_table" yaml:"diff_table"`
}

// Encode renders report according to opts. JSON is indented by two spaces,
// keeps non-ASCII text and HTML characters as is, and has no trailing newline.
func Encode(report *differ.Report, opts Options) ([]byte, error) {
	if opts.Format == FormatText {
		var buf bytes.Buffer
		WriteTable(&buf, report, opts.Color)
		return buf.Bytes(), nil
	}

	doc := shape(report, opts.Fields)

	switch opts.Format {
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal yaml: %w", err)
		}
		return out, nil
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal json: %w", err)
		}
		return unescapeSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
	default:
		return nil, fmt.Errorf("unknown format %q", opts.Format)
	}
}

// unescapeSeparators writes U+2028 and U+2029 back as raw characters.
// encoding/json always escapes them, even with HTML escaping off. An escape is
// only real when it follows an even run of backslashes; otherwise the text
// itself contained a literal backslash-u sequence.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\\' && i+5 < len(data) && string(data[i+1:i+5]) == "u202" &&
			(data[i+5] == '8' || data[i+5] == '9') && evenBackslashes(data[:i]) {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i])
	}
	return out
}

// evenBackslashes reports whether data ends with an even number of
// backslashes.
func evenBackslashes(data []byte) bool {
	n := 0
	for i := len(data) - 1; i >= 0 && data[i] == '\\'; i-- {
		n++
	}
	return n%2 == 0
}

// shape returns the value to marshal for the requested field style.
func shape(report *differ.Report, fields FieldStyle) any {
	if fields != FieldsGeneric {
		return report
	}

	rows := make([]genericRow, 0, len(report.Table))
	for _, row := range report.Table {
		rows = append(rows, genericRow{ID: row.ID, Doc1Text: row.Doc1Text, Doc2Text: row.Doc2Text})
	}
	return genericReport{Doc1: report.Doc1, Doc2: report.Doc2, Table: rows}
}
