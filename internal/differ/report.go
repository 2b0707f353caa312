// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"

	"github.com/tidwall/gjson"
)

// ErrNotReport is returned by LoadRows when the input is not a JSON report.
var ErrNotReport = errors.New("not a linediff JSON report")

// ReportRow is one diff table row read back from an encoded report.
type ReportRow struct {
	ID       int
	Tag      Tag
	Doc1Text string
	Doc2Text string
}

// LoadRows reads the diff table of a JSON report written in either field
// style. Tags are recovered from the changed segments of doc1_segments.
func LoadRows(data []byte) ([]ReportRow, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotReport
	}

	doc := gjson.ParseBytes(data)
	table := doc.Get("diff_table")
	if !table.IsArray() {
		return nil, ErrNotReport
	}

	tags := map[int64]Tag{}
	doc.Get("doc1_segments").ForEach(func(_, seg gjson.Result) bool {
		if seg.Get("type").String() == string(SegmentChanged) {
			tags[seg.Get("diff_id").Int()] = Tag(seg.Get("original_tag").String())
		}
		return true
	})

	rows := make([]ReportRow, 0, len(table.Array()))
	for _, row := range table.Array() {
		id := row.Get("id").Int()
		rows = append(rows, ReportRow{
			ID:       int(id),
			Tag:      tags[id],
			Doc1Text: firstOf(row, "ima_text", "doc1_text"),
			Doc2Text: firstOf(row, "assuta_text", "doc2_text"),
		})
	}
	return rows, nil
}

func firstOf(row gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := row.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}
