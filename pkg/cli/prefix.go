package cli

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/khalid-nowaf/radixtree/pkg/radix"
	"github.com/khalid-nowaf/radixtree/pkg/strmap"
	"github.com/pkg/errors"
)

type PrefixCmd struct {
	Dict    string   `arg:"" type:"existingfile" help:"Dictionary file, one word per line"`
	Queries []string `arg:"" help:"Strings to match against the dictionary"`
	Format  string   `help:"Output format: table, csv, tsv or json" enum:"table,csv,tsv,json" default:"table"`
}

// Run executes the prefix command.
func (cmd *PrefixCmd) Run(ctx *Context) error {
	writer, err := NewWriter(cmd.Format)
	if err != nil {
		return err
	}

	dict, words, err := loadDictionary(ctx, cmd.Dict)
	if err != nil {
		return err
	}

	results := &Results{Headers: []string{"query", "word", "matches"}}
	for _, query := range cmd.Queries {
		index, matches, ok := dict.LongestPrefix(query)
		word := ""
		if ok {
			word = words[index]
		}
		results.Append(query, word, strconv.Itoa(matches))
	}
	return writer.Write(ctx.Out, results)
}

// loadDictionary maps every distinct non blank line of path to its index in
// the returned word list.
func loadDictionary(ctx *Context, path string) (*strmap.Map[int], []string, error) {
	dict, err := strmap.NewMap(
		radix.WithBuckets[int](ctx.Config.Buckets),
		radix.WithLogger[int](ctx.Logger),
	)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if _, exists := dict.Get(word); exists {
			continue
		}
		dict.Put(word, len(words))
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read dictionary %s", path)
	}

	ctx.Logger.Info("dictionary loaded", "file", path, "words", dict.Len())
	return dict, words, nil
}
