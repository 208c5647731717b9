package layout

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Parameters are the tunable physical constants of the simulation.
type Parameters struct {
	Repulsion  float64 `json:"repulsion"`
	Attraction float64 `json:"attraction"`
	Center     float64 `json:"center"`
	// K is the ideal distance between nodes, it scales both attraction and
	// repulsion.
	K float64 `json:"k"`
	// MaxStep bounds the distance a node moves in a single tick.
	MaxStep float64 `json:"max_step"`
	// MaxDiameter is the diameter of the circle around the origin that
	// contains all nodes after each tick.
	MaxDiameter float64 `json:"max_diameter"`
}

var DefaultParameters = Parameters{
	Repulsion:   300.0,
	Attraction:  0.01,
	Center:      0.00001,
	K:           10000.0 / 2.0 * math.Sqrt(3.1415/2000.0),
	MaxStep:     10.0,
	MaxDiameter: 30000.0,
}

// Parameter names a single field of Parameters.
type Parameter string

const (
	ParamRepulsion   Parameter = "repulsion"
	ParamAttraction  Parameter = "attraction"
	ParamCenter      Parameter = "center"
	ParamK           Parameter = "k"
	ParamMaxStep     Parameter = "max_step"
	ParamMaxDiameter Parameter = "max_diameter"
)

var AllParameters = []Parameter{
	ParamRepulsion, ParamAttraction, ParamCenter, ParamK, ParamMaxStep, ParamMaxDiameter,
}

func (p *Parameters) field(name Parameter) (*float64, error) {
	switch name {
	case ParamRepulsion:
		return &p.Repulsion, nil
	case ParamAttraction:
		return &p.Attraction, nil
	case ParamCenter:
		return &p.Center, nil
	case ParamK:
		return &p.K, nil
	case ParamMaxStep:
		return &p.MaxStep, nil
	case ParamMaxDiameter:
		return &p.MaxDiameter, nil
	}
	return nil, errors.Wrapf(ErrUnknownParameter, "'%s'", name)
}

// Value returns the named field of p.
func (p Parameters) Value(name Parameter) (float64, error) {
	f, err := p.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// ParameterStore holds the Parameters shared between the simulation and the
// control surface. Values are not range checked here, callers have to
// validate before setting.
type ParameterStore struct {
	mu     sync.RWMutex
	params Parameters
}

func NewParameterStore(params Parameters) *ParameterStore {
	return &ParameterStore{params: params}
}

// Get returns a consistent copy of all parameters.
func (s *ParameterStore) Get() Parameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *ParameterStore) Set(params Parameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = params
}

// Update applies fn to the stored parameters while holding the write lock.
func (s *ParameterStore) Update(fn func(*Parameters)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.params)
}

func (s *ParameterStore) Value(name Parameter) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, err := s.params.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

func (s *ParameterStore) SetValue(name Parameter, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.params.field(name)
	if err != nil {
		return err
	}
	*f = value
	return nil
}
