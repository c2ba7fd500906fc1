package main

import (
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// render writes v as indented JSON when asked to, otherwise calls table.
func (o *globalOptions) render(w io.Writer, v interface{}, table func(w io.Writer)) error {
	switch o.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputTable, "":
		table(w)
		return nil
	default:
		return errors.Errorf("unknown output format %q", o.output)
	}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}
