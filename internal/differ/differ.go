// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/tfctl/linediff/internal/log"
)

// Tag is the kind of an alignment opcode.
type Tag string

const (
	TagEqual   Tag = "equal"
	TagReplace Tag = "replace"
	TagDelete  Tag = "delete"
	TagInsert  Tag = "insert"
)

// SegmentType distinguishes unchanged runs from changed ones.
type SegmentType string

const (
	SegmentEqual   SegmentType = "equal"
	SegmentChanged SegmentType = "changed"
)

// Opcode describes one run of the alignment. [I1,I2) indexes document 1 and
// [J1,J2) indexes document 2.
type Opcode struct {
	Tag Tag
	I1  int
	I2  int
	J1  int
	J2  int
}

// Segment is one rendering unit of a document view. DiffID and OriginalTag are
// only set on changed segments.
type Segment struct {
	Text        string      `json:"text" yaml:"text"`
	Type        SegmentType `json:"type" yaml:"type"`
	DiffID      *int        `json:"diff_id" yaml:"diff_id"`
	OriginalTag Tag         `json:"original_tag,omitempty" yaml:"original_tag,omitempty"`
}

// Row is one diff table entry. Doc1Text is empty for a pure insert and
// Doc2Text is empty for a pure delete.
type Row struct {
	ID       int    `json:"id" yaml:"id"`
	Doc1Text string `json:"ima_text" yaml:"ima_text"`
	Doc2Text string `json:"assuta_text" yaml:"assuta_text"`
	Tag      Tag    `json:"-" yaml:"-"`
}

// Report is the complete result of a comparison.
type Report struct {
	Doc1  []Segment `json:"doc1_segments" yaml:"doc1_segments"`
	Doc2  []Segment `json:"doc2_segments" yaml:"doc2_segments"`
	Table []Row     `json:"diff_table" yaml:"diff_table"`
}

// Stats summarizes the opcodes behind a Report.
type Stats struct {
	Equal   int
	Replace int
	Delete  int
	Insert  int
}

// Changes is the number of changed opcodes, which is also the highest diff id.
func (s Stats) Changes() int {
	return s.Replace + s.Delete + s.Insert
}

// Opcodes aligns two line sequences. Lines are atomic, auto-junk is off and no
// line is ever treated as junk, so the result depends only on the sequences.
func Opcodes(doc1, doc2 []string) []Opcode {
	matcher := difflib.NewMatcherWithJunk(doc1, doc2, false, nil)

	raw := matcher.GetOpCodes()
	opcodes := make([]Opcode, 0, len(raw))
	for _, op := range raw {
		opcodes = append(opcodes, Opcode{
			Tag: tagFromByte(op.Tag),
			I1:  op.I1,
			I2:  op.I2,
			J1:  op.J1,
			J2:  op.J2,
		})
	}
	return opcodes
}

// Compare aligns doc1 and doc2 and projects the opcodes into both document
// views and the diff table. Diff ids start at 1 and follow opcode order.
func Compare(doc1, doc2 []string) *Report {
	log.Debugf(">> Compare(): lines=%d/%d", len(doc1), len(doc2))

	report := &Report{
		Doc1:  make([]Segment, 0),
		Doc2:  make([]Segment, 0),
		Table: make([]Row, 0),
	}

	counter := 0
	for _, op := range Opcodes(doc1, doc2) {
		text1 := strings.Join(doc1[op.I1:op.I2], "\n")
		text2 := strings.Join(doc2[op.J1:op.J2], "\n")

		if op.Tag == TagEqual {
			report.Doc1 = append(report.Doc1, Segment{Text: text1, Type: SegmentEqual})
			report.Doc2 = append(report.Doc2, Segment{Text: text2, Type: SegmentEqual})
			continue
		}

		counter++

		// The side that lost or never had the lines gets a zero-width marker
		// carrying the same tag, so both timelines stay in step.
		switch op.Tag {
		case TagDelete:
			text2 = ""
		case TagInsert:
			text1 = ""
		}

		report.Doc1 = append(report.Doc1, changedSegment(text1, counter, op.Tag))
		report.Doc2 = append(report.Doc2, changedSegment(text2, counter, op.Tag))
		report.Table = append(report.Table, Row{
			ID:       counter,
			Doc1Text: text1,
			Doc2Text: text2,
			Tag:      op.Tag,
		})
	}

	log.Debugf("Compare() done: segments=%d changes=%d", len(report.Doc1), counter)
	return report
}

// Stats counts the opcodes the report was built from.
func (r *Report) Stats() Stats {
	var s Stats
	for _, seg := range r.Doc1 {
		if seg.Type == SegmentEqual {
			s.Equal++
		}
	}
	for _, row := range r.Table {
		switch row.Tag {
		case TagReplace:
			s.Replace++
		case TagDelete:
			s.Delete++
		case TagInsert:
			s.Insert++
		}
	}
	return s
}

// Identical reports whether the comparison found no changes.
func (r *Report) Identical() bool {
	return len(r.Table) == 0
}

func changedSegment(text string, id int, tag Tag) Segment {
	return Segment{
		Text:        text,
		Type:        SegmentChanged,
		DiffID:      &id,
		OriginalTag: tag,
	}
}

func tagFromByte(b byte) Tag {
	switch b {
	case 'r':
		return TagReplace
	case 'd':
		return TagDelete
	case 'i':
		return TagInsert
	default:
		return TagEqual
	}
}
