package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type GenerateOptions struct {
	Nodes int
	// MaxDependencies bounds the number of dependencies per node.
	MaxDependencies int
	// Groups is the number of distinct groups, 0 leaves all nodes ungrouped.
	Groups int
}

// Generate creates a random acyclic node list: every node only depends on
// nodes generated before it, like packages depending on older packages.
func Generate(rnd *rand.Rand, opts GenerateOptions) []Record {
	records := make([]Record, opts.Nodes)
	for i := range records {
		records[i] = Record{
			Name:         fmt.Sprintf("pkg-%05d", i),
			Dependencies: []string{},
		}
		if opts.Groups > 0 {
			records[i].Group = fmt.Sprintf("group-%d", rnd.Intn(opts.Groups))
		}
		if i == 0 || opts.MaxDependencies <= 0 {
			continue
		}
		deps := rnd.Intn(min(opts.MaxDependencies, i) + 1)
		for _, dep := range rnd.Perm(i)[:deps] {
			records[i].Dependencies = append(records[i].Dependencies, records[dep].Name)
		}
	}
	return records
}

// Encode writes records in format, readable by Decode.
func Encode(w io.Writer, records []Record, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(records), "json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return errors.Wrap(err, "yaml")
		}
		return errors.Wrap(enc.Close(), "yaml")
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(tomlDocument{Nodes: records}), "toml")
	}
	return errors.Wrapf(ErrUnknownFormat, "'%s'", format)
}
