package cli

import (
	"net/netip"
	"strconv"

	"github.com/khalid-nowaf/radixtree/pkg/cidr"
	"github.com/pkg/errors"
)

type LookupCmd struct {
	Files  []string `arg:"" type:"existingfile" help:"Input files containing CIDRs in CSV, TSV or JSON format"`
	IPs    []string `name:"ip" short:"i" required:"" help:"IP address to resolve, repeatable"`
	Format string   `help:"Output format: table, csv, tsv or json" enum:"table,csv,tsv,json" default:"table"`
}

// Run executes the lookup command.
func (cmd *LookupCmd) Run(ctx *Context) error {
	writer, err := NewWriter(cmd.Format)
	if err != nil {
		return err
	}

	addrs := make([]netip.Addr, 0, len(cmd.IPs))
	for _, ip := range cmd.IPs {
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			return errors.Wrapf(err, "invalid IP %q", ip)
		}
		addrs = append(addrs, addr)
	}

	table, _, err := loadTable(ctx, cmd.Files)
	if err != nil {
		return err
	}
	return writer.Write(ctx.Out, lookupResults(table, addrs, ctx.Config.Input.CidrKey))
}

// lookupResults resolves every address, one row per address: the address,
// the matched CIDR, how many stored CIDRs contain it, and the attributes of
// the matched record.
func lookupResults(table *cidr.Table, addrs []netip.Addr, cidrKey string) *Results {
	type match struct {
		addr     netip.Addr
		prefix   netip.Prefix
		metadata *cidr.Metadata
		matches  int
		found    bool
	}

	found := make([]match, 0, len(addrs))
	attributes := []map[string]string{}
	for _, addr := range addrs {
		prefix, metadata, matches, ok := table.Lookup(addr)
		found = append(found, match{addr, prefix, metadata, matches, ok})
		if ok {
			attributes = append(attributes, metadata.Attributes)
		}
	}

	keys := attributeKeys(attributes, cidrKey)
	results := &Results{Headers: append([]string{"ip", cidrKey, "matches"}, keys...)}
	for _, m := range found {
		row := []string{m.addr.String(), "", "0"}
		if m.found {
			row[1] = m.prefix.String()
			row[2] = strconv.Itoa(m.matches)
		}
		for _, key := range keys {
			value := ""
			if m.found {
				value = m.metadata.Attributes[key]
			}
			row = append(row, value)
		}
		results.Append(row...)
	}
	return results
}
