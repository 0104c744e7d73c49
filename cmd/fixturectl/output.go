package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
)

type outputFormat string

const (
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatTable outputFormat = "table"
	formatDump  outputFormat = "dump"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// render prints v in the selected output format.
func (o *options) render(v data.Value) error {
	switch outputFormat(o.output) {
	case formatTable:
		_, err := fmt.Fprintln(o.out, renderTable(v))
		return err
	case formatDump:
		dumper.Fdump(o.out, v.Interface())
		return nil
	}
	return o.renderAny(v)
}

// renderAny prints structured formats for any marshalable value.
func (o *options) renderAny(v any) error {
	switch outputFormat(o.output) {
	case formatJSON:
		return writeJSON(o.out, v)
	case formatYAML:
		return writeYAML(o.out, v)
	case formatTable, formatDump:
		dumper.Fdump(o.out, v)
		return nil
	}
	return errors.UnsupportedFormat(o.output).WithDetail("formats", []outputFormat{formatJSON, formatYAML, formatTable, formatDump})
}

func writeJSON(w io.Writer, v any) error {
	enc := jsontext.NewEncoder(w, jsontext.WithIndent("  "))
	return json.MarshalEncode(enc, v, json.Deterministic(true))
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// renderTable lays a list of rows out as a grid with the union of their
// columns in first-seen order. A single row becomes a field/value grid and
// anything else a one-column grid.
func renderTable(v data.Value) string {
	t := table.New().Border(lipgloss.NormalBorder())

	if r, ok := v.AsMap(); ok {
		t = t.Headers("field", "value")
		for k, cell := range r.All() {
			t = t.Row(k, cell.String())
		}
		return t.String()
	}

	items, ok := v.AsList()
	if !ok {
		return t.Headers("value").Row(v.String()).String()
	}

	var rows []data.Row
	for _, item := range items {
		r, ok := item.AsMap()
		if !ok {
			rows = nil
			break
		}
		rows = append(rows, r)
	}
	if rows == nil {
		t = t.Headers("value")
		for _, item := range items {
			t = t.Row(item.String())
		}
		return t.String()
	}

	var columns []string
	seen := make(map[string]bool)
	for _, r := range rows {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	t = t.Headers(columns...)
	for _, r := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if cell, ok := r.Get(col); ok {
				cells[i] = cell.String()
			}
		}
		t = t.Row(cells...)
	}
	return t.String()
}
