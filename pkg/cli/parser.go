package cli

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/khalid-nowaf/radixtree/internal/config"
	"github.com/khalid-nowaf/radixtree/pkg/cidr"
	"github.com/pkg/errors"
)

type CIDR struct {
	Prefix netip.Prefix
	*cidr.Metadata
}

type Record map[string]string

// parseFile reads the CIDR records of a JSON (array of objects), CSV or TSV
// file, picked by extension, and calls onEachCidr for every one of them.
func parseFile(input config.InputConfig, path string, onEachCidr func(cidr *CIDR) error) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJson(input, path, onEachCidr)
	case ".tsv":
		return parseCsv(input, path, '\t', onEachCidr)
	default:
		return parseCsv(input, path, ',', onEachCidr)
	}
}

func parseJson(input config.InputConfig, path string, onEachCidr func(cidr *CIDR) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)

	// Read opening bracket of the array
	token, err := decoder.Token()
	if err != nil {
		return errors.Wrapf(err, "%s: expected a JSON array", path)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return errors.Errorf("%s: expected a JSON array, got %v", path, token)
	}

	for line := 1; decoder.More(); line++ {
		data := Record{}
		if err := decoder.Decode(&data); err != nil {
			return errors.Wrapf(err, "%s: record %d", path, line)
		}
		entry, err := parseCIDR(data, input)
		if err != nil {
			return errors.Wrapf(err, "%s: record %d", path, line)
		}
		if err := onEachCidr(entry); err != nil {
			return err
		}
	}

	// Read closing bracket of the array
	if _, err = decoder.Token(); err != nil {
		return errors.Wrapf(err, "%s: unterminated JSON array", path)
	}
	return nil
}

func parseCsv(input config.InputConfig, path string, separator rune, onEachCidr func(cidr *CIDR) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = separator
	reader.Comment = '#'

	// the first line is the header
	headers, err := reader.Read()
	if err != nil {
		return errors.Wrapf(err, "%s: missing header", path)
	}

	for {
		recordData, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "%s", path)
		}

		record := make(Record, len(headers))
		for i, value := range recordData {
			record[headers[i]] = value
		}

		entry, err := parseCIDR(record, input)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return errors.Wrapf(err, "%s: line %d", path, line)
		}
		if err := onEachCidr(entry); err != nil {
			return err
		}
	}
}

func parseCIDR(record Record, input config.InputConfig) (*CIDR, error) {
	value, found := record[input.CidrKey]
	if !found {
		return nil, errors.Errorf("missing %q field", input.CidrKey)
	}
	prefix, err := netip.ParsePrefix(strings.TrimSpace(value))
	if err != nil {
		return nil, errors.Wrapf(err, "can not parse CIDR %q", value)
	}

	var priorities []uint8
	if field := strings.TrimSpace(record[input.PriorityKey]); field != "" {
		for _, priority := range strings.Split(field, input.PriorityDelimiter) {
			priority = strings.TrimSpace(priority)
			if priority == "" {
				continue
			}
			i, err := strconv.ParseUint(priority, 10, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "can not convert priority %q to uint8", priority)
			}
			priorities = append(priorities, uint8(i))
		}
	}

	return &CIDR{
		Prefix: prefix,
		Metadata: &cidr.Metadata{
			IsV6:       prefix.Addr().Is6(),
			Priority:   priorities,
			Attributes: record,
		}}, nil
}
