package source

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/fixturekit/data"
	"github.com/kbukum/fixturekit/errors"
)

// decodeYAML reads a mapping of table name to a sequence of rows.
// Anchors and aliases may be used to share rows between tables.
func decodeYAML(r io.Reader) (*Dataset, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if stderrors.Is(err, io.EOF) {
			return NewDataset(), nil
		}
		return nil, err
	}
	v, err := data.FromYAMLNode(&node)
	if err != nil {
		return nil, err
	}
	return fromValue(v)
}

// decodeJSON reads an object of table name to an array of row objects.
func decodeJSON(r io.Reader) (*Dataset, error) {
	v, err := data.DecodeJSON(jsontext.NewDecoder(r))
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return NewDataset(), nil
		}
		return nil, err
	}
	return fromValue(v)
}

// decodeTOML reads arrays of tables, one array per fixture table:
//
//	[[users]]
//	id = 1
//
// TOML decodes into Go maps, so tables and columns come out sorted by name.
func decodeTOML(r io.Reader) (*Dataset, error) {
	var doc map[string]any
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	v, err := data.Of(normalizeTOML(doc))
	if err != nil {
		return nil, err
	}
	return fromValue(v)
}

// normalizeTOML turns TOML date and time values into strings.
func normalizeTOML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeTOML(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeTOML(item)
		}
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeTOML(item)
		}
		return out
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	}
	return v
}

// decodeCSV reads a single table. The first record holds column names.
func decodeCSV(r io.Reader, name string) (*Dataset, error) {
	cr := csv.NewReader(r)
	ds := NewDataset()

	header, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		ds.Add(name, data.Table{})
		return ds, nil
	}
	if err != nil {
		return nil, err
	}

	t := data.Table{}
	for {
		rec, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := data.Row{}
		for i, col := range header {
			row = row.Set(col, ParseCell(rec[i]))
		}
		t = append(t, row)
	}
	ds.Add(name, t)
	return ds, nil
}

// decodeXML reads a flat XML dataset:
//
//	<dataset>
//	  <users id="1" name="Ada"/>
//	  <groups/>
//	</dataset>
//
// Each element is a row of the table named by its tag, and its attributes
// are the columns. An element without attributes declares an empty table.
// An absent attribute is an absent column; an empty one is an empty string.
func decodeXML(r io.Reader) (*Dataset, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil || root.Tag != "dataset" {
		return nil, errors.InvalidFormat("dataset", "a <dataset> root element")
	}

	ds := NewDataset()
	for _, el := range root.ChildElements() {
		t, exists := ds.tables[el.Tag]
		if len(el.Attr) == 0 {
			if !exists {
				ds.Add(el.Tag, data.Table{})
			}
			continue
		}
		row := data.Row{}
		for _, a := range el.Attr {
			cell := data.String("")
			if a.Value != "" {
				cell = ParseCell(a.Value)
			}
			row = row.Set(a.Key, cell)
		}
		ds.Add(el.Tag, append(t, row))
	}
	return ds, nil
}

// ParseCell types a text cell: empty is null, true and false are booleans,
// integers and finite floats are numbers, anything else is a string.
func ParseCell(s string) data.Value {
	switch s {
	case "":
		return data.Null()
	case "true":
		return data.Bool(true)
	case "false":
		return data.Bool(false)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return data.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return data.Float(f)
	}
	return data.String(s)
}
