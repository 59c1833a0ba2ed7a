package cli

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

// Results is a rectangular set of rows ready to be written in any format.
type Results struct {
	Headers []string
	Rows    [][]string
}

func (r *Results) Append(row ...string) {
	r.Rows = append(r.Rows, row)
}

// Writer renders Results to an output stream.
type Writer interface {
	Write(w io.Writer, results *Results) error
}

// NewWriter returns the Writer for format: table, csv, tsv or json.
func NewWriter(format string) (Writer, error) {
	switch format {
	case "", "table":
		return TableWriter{}, nil
	case "csv":
		return CsvWriter{}, nil
	case "tsv":
		return CsvWriter{isTSV: true}, nil
	case "json":
		return JsonWriter{}, nil
	}
	return nil, errors.Errorf("unknown output format %q", format)
}

type TableWriter struct{}

func (TableWriter) Write(w io.Writer, results *Results) error {
	outputTable := table.NewWriter()
	outputTable.SetOutputMirror(w)

	header := make(table.Row, 0, len(results.Headers))
	for _, h := range results.Headers {
		header = append(header, h)
	}
	outputTable.AppendHeader(header)

	for _, r := range results.Rows {
		row := make(table.Row, 0, len(r))
		for _, cell := range r {
			row = append(row, cell)
		}
		outputTable.AppendRow(row)
	}
	outputTable.Render()
	return nil
}

type CsvWriter struct {
	isTSV bool
}

func (w CsvWriter) Write(out io.Writer, results *Results) error {
	writer := csv.NewWriter(out)
	if w.isTSV {
		writer.Comma = '\t'
	}

	if err := writer.Write(results.Headers); err != nil {
		return err
	}
	for _, row := range results.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// JsonWriter writes one JSON object per row, keyed by the headers, inside a
// single array.
type JsonWriter struct{}

func (JsonWriter) Write(w io.Writer, results *Results) error {
	objects := make([]map[string]string, 0, len(results.Rows))
	for _, row := range results.Rows {
		object := make(map[string]string, len(results.Headers))
		for i, header := range results.Headers {
			if i < len(row) {
				object[header] = row[i]
			}
		}
		objects = append(objects, object)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(objects)
}

// attributeKeys collects the attribute names used by any of attributes,
// sorted, without the skipped ones.
func attributeKeys(attributes []map[string]string, skip ...string) []string {
	keys := map[string]struct{}{}
	for _, attrs := range attributes {
		for key := range attrs {
			if !slices.Contains(skip, key) {
				keys[key] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(keys))
}
