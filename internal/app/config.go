package app

import (
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/depgraph-layout/internal/ingest"
	"github.com/suxatcode/depgraph-layout/layout"
)

type Config struct {
	Production bool `env:"PRODUCTION" envDefault:"false"`
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	LogLevel string `env:"LOGLEVEL" envDefault:"debug"`
	// HTTP timeouts (read and write)
	HTTPTimeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Port        string        `env:"PORT" envDefault:"8080"`

	// InputFile defaults to DefaultInputFile when no inline payload is given.
	InputFile   string   `env:"INPUT_FILE"`
	InputInline string   `env:"INPUT_INLINE"`
	Exclude     []string `env:"EXCLUDE" envSeparator:","`
	// AllowEmptyGraph replaces a graph that failed to load by an empty one
	// instead of giving up.
	AllowEmptyGraph bool `env:"ALLOW_EMPTY_GRAPH" envDefault:"false"`

	Ticks        int           `env:"TICKS" envDefault:"1000"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"16ms"`
	Epsilon      float64       `env:"EPSILON" envDefault:"0"`
	// Workers <= 0 uses one worker per CPU.
	Workers       int     `env:"WORKERS" envDefault:"0"`
	BarnesHut     bool    `env:"BARNES_HUT" envDefault:"false"`
	Theta         float64 `env:"THETA" envDefault:"0.75"`
	InitialLayout string  `env:"INITIAL_LAYOUT" envDefault:"random"`
	InitialSpread float64 `env:"INITIAL_SPREAD" envDefault:"50000"`

	Repulsion   float64 `env:"REPULSION" envDefault:"300"`
	Attraction  float64 `env:"ATTRACTION" envDefault:"0.01"`
	Center      float64 `env:"CENTER" envDefault:"0.00001"`
	K           float64 `env:"K" envDefault:"198.1634426426832"`
	MaxStep     float64 `env:"MAX_STEP" envDefault:"10"`
	MaxDiameter float64 `env:"MAX_DIAMETER" envDefault:"30000"`
}

func GetEnvConfig() (Config, error) {
	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		return conf, errors.Wrap(err, "parse environment")
	}
	return conf, nil
}

// SetupLogging configures the global logger from conf.
func SetupLogging(conf Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		println("failed to parse LogLevel: '" + conf.LogLevel + "', setting to debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if !conf.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func (conf Config) Parameters() layout.Parameters {
	return layout.Parameters{
		Repulsion:   conf.Repulsion,
		Attraction:  conf.Attraction,
		Center:      conf.Center,
		K:           conf.K,
		MaxStep:     conf.MaxStep,
		MaxDiameter: conf.MaxDiameter,
	}
}

func (conf Config) SimulationConfig() (layout.ForceSimulationConfig, error) {
	fsconf := layout.ForceSimulationConfig{
		Parallelization: conf.Workers,
		BarnesHut:       conf.BarnesHut,
		Theta:           conf.Theta,
		InitialSpread:   conf.InitialSpread,
		Epsilon:         conf.Epsilon,
	}
	if fsconf.Parallelization <= 0 {
		fsconf.Parallelization = runtime.NumCPU()
	}
	switch strings.ToLower(conf.InitialLayout) {
	case "", "random":
		fsconf.InitialLayout = layout.InitialLayoutRandom
	case "circle":
		fsconf.InitialLayout = layout.InitialLayoutCircle
	default:
		return fsconf, errors.Errorf("unknown initial layout '%s', expected 'random' or 'circle'", conf.InitialLayout)
	}
	return fsconf, nil
}

const DefaultInputFile = "packages-map.json"

func (conf Config) Source() ingest.Source {
	file := conf.InputFile
	if file == "" && strings.TrimSpace(conf.InputInline) == "" {
		file = DefaultInputFile
	}
	return ingest.Source{
		File:    file,
		Inline:  conf.InputInline,
		Exclude: conf.Exclude,
	}
}
