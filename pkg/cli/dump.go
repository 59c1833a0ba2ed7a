package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/khalid-nowaf/radixtree/internal/config"
	"github.com/khalid-nowaf/radixtree/pkg/cidr"
)

type DumpCmd struct {
	Files  []string `arg:"" type:"existingfile" help:"Input files containing CIDRs in CSV, TSV or JSON format"`
	V6     bool     `name:"v6" help:"Dump the IPv6 CIDRs instead of the IPv4 ones"`
	Tree   bool     `help:"Print the raw prefix tree, edges as address bits"`
	Format string   `help:"Output format: table, csv, tsv or json" enum:"table,csv,tsv,json" default:"table"`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *Context) error {
	table, _, err := loadTable(ctx, cmd.Files)
	if err != nil {
		return err
	}

	if cmd.Tree {
		_, err := fmt.Fprint(ctx.Out, table.Dump(cmd.V6))
		return err
	}

	writer, err := NewWriter(cmd.Format)
	if err != nil {
		return err
	}
	return writer.Write(ctx.Out, dumpResults(table.Records(cmd.V6), ctx.Config.Input))
}

// dumpResults lists records with their CIDR, priority and attributes. The
// CIDR column holds the stored prefix, with host bits cleared.
func dumpResults(records []cidr.Record, input config.InputConfig) *Results {
	attributes := make([]map[string]string, 0, len(records))
	for _, record := range records {
		attributes = append(attributes, record.Metadata.Attributes)
	}

	keys := attributeKeys(attributes, input.CidrKey, input.PriorityKey)
	results := &Results{Headers: append([]string{input.CidrKey, input.PriorityKey}, keys...)}
	for _, record := range records {
		priorities := make([]string, 0, len(record.Metadata.Priority))
		for _, p := range record.Metadata.Priority {
			priorities = append(priorities, strconv.Itoa(int(p)))
		}

		row := []string{record.Prefix.String(), strings.Join(priorities, input.PriorityDelimiter)}
		for _, key := range keys {
			row = append(row, record.Metadata.Attributes[key])
		}
		results.Append(row...)
	}
	return results
}
