package cli

import (
	"github.com/khalid-nowaf/radixtree/pkg/cidr"
	"github.com/pkg/errors"
)

// Stats counts what happened while loading input files.
type Stats struct {
	Input   int // records read
	Ignored int // records losing to an equal CIDR with a higher priority
}

// loadTable builds a CIDR table out of the records of every file.
func loadTable(ctx *Context, files []string) (*cidr.Table, *Stats, error) {
	table, err := cidr.NewTable(
		cidr.WithBuckets(ctx.Config.Buckets),
		cidr.WithLogger(ctx.Logger),
	)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	for _, file := range files {
		err := parseFile(ctx.Config.Input, file, func(entry *CIDR) error {
			stats.Input++
			stored, err := table.Insert(entry.Prefix, entry.Metadata)
			if err != nil {
				return err
			}
			if !stored {
				stats.Ignored++
			}
			return nil
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load CIDRs")
		}
		ctx.Logger.Debug("loaded file", "file", file, "records", stats.Input)
	}

	ctx.Logger.Info("CIDRs loaded",
		"files", len(files),
		"records", stats.Input,
		"ignored", stats.Ignored,
		"stored", table.Len())
	return table, stats, nil
}
