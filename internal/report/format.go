// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders backend payloads, page view-models, routes, and
// snapshots for the terminal. Every value can be written as an aligned
// table, indented JSON, or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format selects an output encoding.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// ParseFormat accepts table, json, or yaml (case-insensitive). The empty
// string means Table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", Table:
		return Table, nil
	case JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json, or yaml)", s)
}

// Render writes v to w in format f. Table output is only available for the
// types this package knows how to lay out.
func Render(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		return FormatJSON(v, w)
	case YAML:
		return FormatYAML(v, w)
	case Table, "":
		return FormatTable(v, w)
	}
	return fmt.Errorf("unknown output format %q", f)
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatYAML writes v as YAML to w.
func FormatYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
