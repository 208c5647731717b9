/*
 * stress-test generates a random dependency node list, to benchmark
 * gen-layout on graphs of arbitrary size
 */
package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/suxatcode/depgraph-layout/internal/ingest"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		opts   = ingest.GenerateOptions{Nodes: 1000, MaxDependencies: 5, Groups: 8}
		seed   int64
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:          "stress-test",
		Short:        "generate a random dependency node list",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			f := ingest.Format(format)
			w := cmd.OutOrStdout()
			if output != "" {
				if format == "" {
					var err error
					if f, err = ingest.FormatOf(output); err != nil {
						return err
					}
				}
				file, err := os.Create(output)
				if err != nil {
					return errors.Wrap(err, "create output file")
				}
				defer file.Close()
				w = file
			}
			if f == "" {
				f = ingest.FormatJSON
			}
			records := ingest.Generate(rand.New(rand.NewSource(seed)), opts)
			log.Info().Msgf("generated %d nodes (seed %d)", len(records), seed)
			return ingest.Encode(w, records, f)
		},
	}
	cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", opts.Nodes, "number of nodes")
	cmd.Flags().IntVar(&opts.MaxDependencies, "max-deps", opts.MaxDependencies, "maximum number of dependencies per node")
	cmd.Flags().IntVar(&opts.Groups, "groups", opts.Groups, "number of groups, 0 for none")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, default stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or toml, default from the output file extension")
	return cmd
}
