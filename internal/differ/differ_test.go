// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yudai/gojsondiff"
)

func intPtr(i int) *int { return &i }

func TestCompare_Examples(t *testing.T) {
	tests := []struct {
		name      string
		doc1      []string
		doc2      []string
		wantDoc1  []Segment
		wantDoc2  []Segment
		wantTable []Row
	}{
		{
			name: "replace in the middle",
			doc1: []string{"a", "b", "c"},
			doc2: []string{"a", "x", "c"},
			wantDoc1: []Segment{
				{Text: "a", Type: SegmentEqual},
				{Text: "b", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagReplace},
				{Text: "c", Type: SegmentEqual},
			},
			wantDoc2: []Segment{
				{Text: "a", Type: SegmentEqual},
				{Text: "x", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagReplace},
				{Text: "c", Type: SegmentEqual},
			},
			wantTable: []Row{{ID: 1, Doc1Text: "b", Doc2Text: "x", Tag: TagReplace}},
		},
		{
			name: "trailing delete",
			doc1: []string{"a", "b"},
			doc2: []string{"a"},
			wantDoc1: []Segment{
				{Text: "a", Type: SegmentEqual},
				{Text: "b", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagDelete},
			},
			wantDoc2: []Segment{
				{Text: "a", Type: SegmentEqual},
				{Text: "", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagDelete},
			},
			wantTable: []Row{{ID: 1, Doc1Text: "b", Doc2Text: "", Tag: TagDelete}},
		},
		{
			name: "insert into empty document",
			doc1: []string{},
			doc2: []string{"hello"},
			wantDoc1: []Segment{
				{Text: "", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagInsert},
			},
			wantDoc2: []Segment{
				{Text: "hello", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagInsert},
			},
			wantTable: []Row{{ID: 1, Doc1Text: "", Doc2Text: "hello", Tag: TagInsert}},
		},
		{
			name: "multi-line runs are joined with newlines",
			doc1: []string{"head", "one", "two", "tail"},
			doc2: []string{"head", "uno", "dos", "tres", "tail"},
			wantDoc1: []Segment{
				{Text: "head", Type: SegmentEqual},
				{Text: "one\ntwo", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagReplace},
				{Text: "tail", Type: SegmentEqual},
			},
			wantDoc2: []Segment{
				{Text: "head", Type: SegmentEqual},
				{Text: "uno\ndos\ntres", Type: SegmentChanged, DiffID: intPtr(1), OriginalTag: TagReplace},
				{Text: "tail", Type: SegmentEqual},
			},
			wantTable: []Row{{ID: 1, Doc1Text: "one\ntwo", Doc2Text: "uno\ndos\ntres", Tag: TagReplace}},
		},
		{
			name:      "both empty",
			doc1:      nil,
			doc2:      nil,
			wantDoc1:  []Segment{},
			wantDoc2:  []Segment{},
			wantTable: []Row{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Compare(tt.doc1, tt.doc2)
			assert.Equal(t, tt.wantDoc1, report.Doc1)
			assert.Equal(t, tt.wantDoc2, report.Doc2)
			assert.Equal(t, tt.wantTable, report.Table)
		})
	}
}

func TestCompare_Identity(t *testing.T) {
	doc := []string{"first", "", "  indented", "last"}
	report := Compare(doc, doc)

	require.Len(t, report.Doc1, 1)
	require.Len(t, report.Doc2, 1)
	assert.Equal(t, SegmentEqual, report.Doc1[0].Type)
	assert.Nil(t, report.Doc1[0].DiffID)
	assert.Equal(t, strings.Join(doc, "\n"), report.Doc1[0].Text)
	assert.Equal(t, report.Doc1, report.Doc2)
	assert.Empty(t, report.Table)
	assert.True(t, report.Identical())
}

// Frequent lines must still be matched; auto-junk would drop the blank lines
// here and turn an identical comparison into a replace.
func TestCompare_RepeatedLinesAreNotJunk(t *testing.T) {
	doc := make([]string, 250)
	for i := range doc {
		if i%10 == 0 {
			doc[i] = "section"
		}
	}

	report := Compare(doc, doc)
	require.Len(t, report.Doc1, 1)
	assert.Equal(t, SegmentEqual, report.Doc1[0].Type)
	assert.Empty(t, report.Table)
}

func TestOpcodes_TieBreaking(t *testing.T) {
	tests := []struct {
		name string
		doc1 []string
		doc2 []string
		want []Opcode
	}{
		{
			name: "earliest match in doc1 wins",
			doc1: []string{"a", "b", "a"},
			doc2: []string{"a"},
			want: []Opcode{
				{Tag: TagEqual, I1: 0, I2: 1, J1: 0, J2: 1},
				{Tag: TagDelete, I1: 1, I2: 3, J1: 1, J2: 1},
			},
		},
		{
			name: "earliest match in doc2 wins",
			doc1: []string{"a"},
			doc2: []string{"a", "b", "a"},
			want: []Opcode{
				{Tag: TagEqual, I1: 0, I2: 1, J1: 0, J2: 1},
				{Tag: TagInsert, I1: 1, I2: 1, J1: 1, J2: 3},
			},
		},
		{
			name: "longest block anchors the recursion",
			doc1: []string{"x", "a", "b", "c", "y"},
			doc2: []string{"a", "b", "c", "z"},
			want: []Opcode{
				{Tag: TagDelete, I1: 0, I2: 1, J1: 0, J2: 0},
				{Tag: TagEqual, I1: 1, I2: 4, J1: 0, J2: 3},
				{Tag: TagReplace, I1: 4, I2: 5, J1: 3, J2: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Opcodes(tt.doc1, tt.doc2))
		})
	}
}

var propertyCases = []struct {
	name  string
	doc1  []string
	doc2  []string
	blank bool
}{
	{"disjoint", []string{"a", "b"}, []string{"c", "d", "e"}, false},
	{"interleaved", []string{"1", "2", "3", "4", "5", "6"}, []string{"0", "2", "3", "x", "5", "7", "8"}, false},
	{"blank lines", []string{"", "", "a", "", ""}, []string{"", "a", "", "", "", "b"}, true},
	{"whitespace is significant", []string{"a ", " b", "C"}, []string{"a", "b", "c"}, false},
	{"prefix insert", []string{"m", "n"}, []string{"k", "l", "m", "n"}, false},
	{"suffix delete", []string{"m", "n", "o", "p"}, []string{"m", "n"}, false},
	{"doc2 empty", []string{"only"}, nil, false},
}

// reconstruct rejoins a view, skipping the zero-width markers that stand in for
// lines living only in the other document.
func reconstruct(segments []Segment, marker Tag) []string {
	var lines []string
	for _, seg := range segments {
		if seg.Type == SegmentChanged && seg.OriginalTag == marker {
			continue
		}
		lines = append(lines, seg.Text)
	}
	return lines
}

func TestCompare_Coverage(t *testing.T) {
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			report := Compare(tc.doc1, tc.doc2)
			assert.Equal(t, strings.Join(tc.doc1, "\n"), strings.Join(reconstruct(report.Doc1, TagInsert), "\n"))
			assert.Equal(t, strings.Join(tc.doc2, "\n"), strings.Join(reconstruct(report.Doc2, TagDelete), "\n"))
		})
	}
}

func TestCompare_IDConsistency(t *testing.T) {
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			report := Compare(tc.doc1, tc.doc2)

			collect := func(segments []Segment) []int {
				var ids []int
				for _, seg := range segments {
					if seg.Type == SegmentEqual {
						assert.Nil(t, seg.DiffID)
						assert.Empty(t, seg.OriginalTag)
						continue
					}
					require.NotNil(t, seg.DiffID)
					ids = append(ids, *seg.DiffID)
				}
				return ids
			}

			var tableIDs []int
			for i, row := range report.Table {
				assert.Equal(t, i+1, row.ID)
				tableIDs = append(tableIDs, row.ID)
			}

			assert.Equal(t, tableIDs, collect(report.Doc1))
			assert.Equal(t, tableIDs, collect(report.Doc2))
			assert.Equal(t, len(report.Table), report.Stats().Changes())
		})
	}
}

func TestCompare_Mirroring(t *testing.T) {
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			report := Compare(tc.doc1, tc.doc2)
			for _, row := range report.Table {
				// A deleted or inserted blank line is empty on both sides.
				if !tc.blank {
					assert.True(t, row.Doc1Text != "" || row.Doc2Text != "", "row %d is empty on both sides", row.ID)
				}
				switch row.Tag {
				case TagInsert:
					assert.Empty(t, row.Doc1Text)
				case TagDelete:
					assert.Empty(t, row.Doc2Text)
				}
			}
		})
	}
}

func TestCompare_Deterministic(t *testing.T) {
	for _, tc := range propertyCases {
		t.Run(tc.name, func(t *testing.T) {
			first, err := json.Marshal(Compare(tc.doc1, tc.doc2))
			require.NoError(t, err)
			second, err := json.Marshal(Compare(tc.doc1, tc.doc2))
			require.NoError(t, err)

			assert.Equal(t, first, second)

			delta, err := gojsondiff.New().Compare(first, second)
			require.NoError(t, err)
			assert.False(t, delta.Modified())
		})
	}
}

func TestReport_Stats(t *testing.T) {
	report := Compare(
		[]string{"keep", "old", "gone", "keep2"},
		[]string{"new", "keep", "changed", "keep2", "added"},
	)

	stats := report.Stats()
	assert.Equal(t, Stats{Equal: 2, Replace: 1, Delete: 0, Insert: 2}, stats)
	assert.Equal(t, len(report.Table), stats.Changes())
	assert.False(t, report.Identical())
}

func TestSegmentJSONShape(t *testing.T) {
	report := Compare([]string{"a", "b"}, []string{"a", "c"})
	data, err := json.Marshal(report)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"doc1_segments": [
			{"text": "a", "type": "equal", "diff_id": null},
			{"text": "b", "type": "changed", "diff_id": 1, "original_tag": "replace"}
		],
		"doc2_segments": [
			{"text": "a", "type": "equal", "diff_id": null},
			{"text": "c", "type": "changed", "diff_id": 1, "original_tag": "replace"}
		],
		"diff_table": [
			{"id": 1, "ima_text": "b", "assuta_text": "c"}
		]
	}`, string(data))
}
