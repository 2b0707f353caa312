// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/tfctl/linediff/internal/differ"
	"github.com/tfctl/linediff/internal/log"
)

// schemaTag is one report attribute discovered from a json struct tag.
type schemaTag struct {
	Path     string
	Type     string
	Optional bool
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	out := t.Path + " " + t.Type
	if t.Optional {
		out += " (optional)"
	}
	return out
}

// maxSchemaDepth limits the depth of schema walking.
const maxSchemaDepth = 3

// DumpSchema writes the sorted attribute paths of a report in the given field
// style to w.
func DumpSchema(fields FieldStyle, w io.Writer) {
	var typ reflect.Type
	if fields == FieldsGeneric {
		typ = reflect.TypeOf(genericReport{})
	} else {
		typ = reflect.TypeOf(differ.Report{})
	}

	fmt.Fprintf(w, "Report attributes (%s fields). Arrays are marked with [].\n\n", fieldsName(fields))

	tags := dumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Path < tags[j].Path
	})

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

func fieldsName(fields FieldStyle) string {
	if fields == "" {
		return string(FieldsOriginal)
	}
	return string(fields)
}

// dumpSchemaWalker walks a struct type collecting json tags. Slices of structs
// are descended into with a [] suffix.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	tags := make([]schemaTag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		name, opts, _ := strings.Cut(tagValue, ",")
		if name == "-" || name == "" {
			continue
		}

		path := name
		if holder != "" {
			path = holder + "." + name
		}

		ft := field.Type
		switch ft.Kind() {
		case reflect.Slice:
			if ft.Elem().Kind() == reflect.Struct && depth < maxSchemaDepth {
				tags = append(tags, schemaTag{Path: path + "[]", Type: "array"})
				tags = append(tags, dumpSchemaWalker(path+"[]", ft.Elem(), depth+1)...)
				continue
			}
			tags = append(tags, schemaTag{Path: path, Type: "array"})
		case reflect.Ptr:
			tags = append(tags, schemaTag{Path: path, Type: jsonType(ft.Elem()) + "|null"})
		default:
			tags = append(tags, schemaTag{Path: path, Type: jsonType(ft), Optional: strings.Contains(opts, "omitempty")})
		}
	}

	return tags
}

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}
