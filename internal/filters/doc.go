// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects diff table rows with --filter expressions.
//
// A filter is a key, an operator and a target. Several filters are joined
// with a delimiter (default: comma, override with LINEDIFF_FILTER_DELIM) and a
// row is kept only when it matches all of them.
//
// Keys:
//
//   - id   : the change number, compared numerically
//   - tag  : replace, delete or insert
//   - doc1 : the first document's side of the change
//   - doc2 : the second document's side of the change
//   - text : either side
//
// Operators (prefix with ! to negate):
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains substring
//   - / : regular expression match
//
// Examples:
//
//   - "tag=delete" : only deletions
//   - "doc2@TODO" : changes whose new text mentions TODO
//   - "id>10,tag!=insert" : later changes that are not insertions
//
// Malformed expressions and unknown keys are logged and skipped.
package filters
