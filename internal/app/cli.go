package app

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/suxatcode/depgraph-layout/internal/render"
)

// NewRootCommand returns the gen-layout command line. Flag defaults are
// taken from conf, which is usually read from the environment.
func NewRootCommand(conf Config, stdout io.Writer) *cobra.Command {
	var (
		pngFile string
		pretty  bool
	)
	root := &cobra.Command{
		Use:   "gen-layout",
		Short: "gen-layout computes a force directed layout of a dependency graph",
		Long: `gen-layout reads a list of nodes and their dependencies, runs a force
directed simulation on it and writes the final positions as JSON to stdout.

Input files may be JSON, YAML or TOML, e.g.

  [{"Name": "bash", "dep": ["readline"], "introduced_in": "core"},
   {"Name": "readline", "dep": []}]`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			SetupLogging(conf)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := BuildSimulation(conf)
			if err != nil {
				return err
			}
			view, stats := RunBatch(cmd.Context(), conf, fs)
			if err := cmd.Context().Err(); err != nil {
				return errors.Wrapf(err, "interrupted after %d ticks", stats.Iterations)
			}
			enc := json.NewEncoder(stdout)
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(view); err != nil {
				return errors.Wrap(err, "write layout")
			}
			if pngFile != "" {
				if err := render.SavePNG(pngFile, view, render.DefaultOptions); err != nil {
					return err
				}
				log.Info().Msgf("wrote '%s'", pngFile)
			}
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&conf.InputFile, "input", "i", conf.InputFile, "node list file (.json, .yaml, .yml, .toml), default "+DefaultInputFile)
	flags.StringVar(&conf.InputInline, "inline", conf.InputInline, "inline JSON node list, merged with --input")
	flags.StringSliceVar(&conf.Exclude, "exclude", conf.Exclude, "nodes whose edges are ignored")
	flags.BoolVar(&conf.AllowEmptyGraph, "allow-empty-graph", conf.AllowEmptyGraph, "continue with an empty graph if the input is malformed")
	flags.StringVar(&conf.LogLevel, "log-level", conf.LogLevel, "trace, debug, info, warn or error")
	flags.IntVar(&conf.Workers, "workers", conf.Workers, "goroutines computing repulsion, <= 0 uses one per CPU")
	flags.BoolVar(&conf.BarnesHut, "barnes-hut", conf.BarnesHut, "approximate repulsion with a quadtree")
	flags.Float64Var(&conf.Theta, "theta", conf.Theta, "Barnes-Hut accuracy, smaller is more exact")
	flags.StringVar(&conf.InitialLayout, "initial-layout", conf.InitialLayout, "random or circle")
	flags.Float64Var(&conf.InitialSpread, "initial-spread", conf.InitialSpread, "extent of the initial placement")
	flags.Float64Var(&conf.Repulsion, "repulsion", conf.Repulsion, "repulsion strength")
	flags.Float64Var(&conf.Attraction, "attraction", conf.Attraction, "attraction strength along edges")
	flags.Float64Var(&conf.Center, "center", conf.Center, "pull towards the origin")
	flags.Float64Var(&conf.K, "k", conf.K, "ideal distance between nodes")
	flags.Float64Var(&conf.MaxStep, "max-step", conf.MaxStep, "maximum movement of a node per tick")
	flags.Float64Var(&conf.MaxDiameter, "max-diameter", conf.MaxDiameter, "diameter of the circle containing all nodes")

	root.Flags().IntVarP(&conf.Ticks, "ticks", "n", conf.Ticks, "number of ticks to run")
	root.Flags().Float64Var(&conf.Epsilon, "epsilon", conf.Epsilon, "stop once no node moves further than this in a tick")
	root.Flags().StringVar(&pngFile, "png", "", "also draw the layout into this PNG file")
	root.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	root.AddCommand(newServeCommand(&conf))
	return root
}

func newServeCommand(conf *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the simulation continuously and serve it over HTTP",
		Long: `serve ticks the simulation once per --tick-interval and serves

  GET /layout               current positions
  GET /parameters           current parameters
  PUT /parameters           replace all parameters
  GET /parameters/{name}    a single parameter
  PUT /parameters/{name}    set a single parameter, body {"value": 1.5}
  GET /metrics              Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Serve(cmd.Context(), *conf)
		},
	}
	cmd.Flags().StringVarP(&conf.Port, "port", "p", conf.Port, "HTTP port")
	cmd.Flags().DurationVar(&conf.TickInterval, "tick-interval", conf.TickInterval, "time between two ticks")
	cmd.Flags().DurationVar(&conf.HTTPTimeout, "timeout", conf.HTTPTimeout, "HTTP read and write timeout")
	return cmd
}
