// Package ingest reads the node list the layout is computed for. A node list
// can come from a file, an inline JSON payload or both, in which case the two
// lists are merged.
package ingest

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/depgraph-layout/layout"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoInput       = errors.New("neither an input file nor an inline payload given")
	ErrUnknownFormat = errors.New("unknown input format")
)

// Record is a node as written in the input. The keys are those of the
// package maps the layout was first built for.
type Record struct {
	Name         string   `json:"Name" yaml:"Name" toml:"Name"`
	Dependencies []string `json:"dep" yaml:"dep" toml:"dep"`
	Group        string   `json:"introduced_in,omitempty" yaml:"introduced_in,omitempty" toml:"introduced_in,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// tomlDocument wraps the list, TOML has no top-level arrays:
//
//	[[node]]
//	Name = "a"
//	dep = ["b"]
type tomlDocument struct {
	Nodes []Record `toml:"node"`
}

// Source describes where to read the node list from.
type Source struct {
	File string
	// Inline is a JSON encoded node list.
	Inline string
	// Exclude lists node names whose edges are dropped, the nodes themselves
	// are kept.
	Exclude []string
}

// Load reads, merges and filters the records of src.
func Load(src Source) ([]layout.NodeRecord, error) {
	if src.File == "" && strings.TrimSpace(src.Inline) == "" {
		return nil, ErrNoInput
	}
	records := []Record{}
	if src.File != "" {
		fromFile, err := ReadFile(src.File)
		if err != nil {
			return nil, err
		}
		log.Debug().Msgf("read %d records from '%s'", len(fromFile), src.File)
		records = fromFile
	}
	if strings.TrimSpace(src.Inline) != "" {
		inline, err := Decode(strings.NewReader(src.Inline), FormatJSON)
		if err != nil {
			return nil, errors.Wrap(err, "inline payload")
		}
		log.Debug().Msgf("read %d inline records", len(inline))
		records = Merge(records, inline)
	}
	records = Exclude(records, src.Exclude)
	return ToNodeRecords(records), nil
}

// FormatOf derives the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "'%s'", path)
}

func ReadFile(path string) ([]Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read input file")
	}
	records, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "decode '%s'", path)
	}
	return records, nil
}

func Decode(r io.Reader, format Format) ([]Record, error) {
	records := []Record{}
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, errors.Wrap(err, "json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "yaml")
		}
	case FormatTOML:
		doc := tomlDocument{}
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "toml")
		}
		records = append(records, doc.Nodes...)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "'%s'", format)
	}
	return records, nil
}

// Merge adds the records of overlay to base. A record whose name already
// exists in base extends that record's dependencies by the ones it does not
// list yet; its group is only taken if base has none.
func Merge(base, overlay []Record) []Record {
	merged := make([]Record, len(base), len(base)+len(overlay))
	copy(merged, base)
	index := make(map[string]int, len(base))
	for i := len(merged) - 1; i >= 0; i-- {
		index[merged[i].Name] = i
	}
	for _, record := range overlay {
		i, exists := index[record.Name]
		if !exists {
			index[record.Name] = len(merged)
			merged = append(merged, record)
			continue
		}
		existing := &merged[i]
		deps := append([]string{}, existing.Dependencies...)
		for _, dep := range record.Dependencies {
			if !slices.Contains(deps, dep) {
				deps = append(deps, dep)
			}
		}
		existing.Dependencies = deps
		if existing.Group == "" {
			existing.Group = record.Group
		}
	}
	return merged
}

// Exclude drops every dependency from or to one of names.
func Exclude(records []Record, names []string) []Record {
	if len(names) == 0 {
		return records
	}
	filtered := make([]Record, len(records))
	for i, record := range records {
		filtered[i] = Record{Name: record.Name, Group: record.Group, Dependencies: []string{}}
		if slices.Contains(names, record.Name) {
			continue
		}
		for _, dep := range record.Dependencies {
			if !slices.Contains(names, dep) {
				filtered[i].Dependencies = append(filtered[i].Dependencies, dep)
			}
		}
	}
	return filtered
}

func ToNodeRecords(records []Record) []layout.NodeRecord {
	nodes := make([]layout.NodeRecord, len(records))
	for i, record := range records {
		nodes[i] = layout.NodeRecord{Name: record.Name, Dependencies: record.Dependencies, Group: record.Group}
	}
	return nodes
}
