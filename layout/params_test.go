package layout

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParameterStore(t *testing.T) {
	s := NewParameterStore(DefaultParameters)
	assert := assert.New(t)
	assert.Equal(DefaultParameters, s.Get())

	s.Set(Parameters{Repulsion: 1, Attraction: 2, Center: 3, K: 4, MaxStep: 5, MaxDiameter: 6})
	for i, name := range AllParameters {
		v, err := s.Value(name)
		assert.NoError(err)
		assert.Equal(float64(i+1), v, name)
	}

	assert.NoError(s.SetValue(ParamMaxStep, 50))
	assert.Equal(50.0, s.Get().MaxStep)

	s.Update(func(p *Parameters) { p.K *= 2 })
	assert.Equal(8.0, s.Get().K)
}

func TestParameterStore_unknownParameter(t *testing.T) {
	s := NewParameterStore(DefaultParameters)
	assert := assert.New(t)
	_, err := s.Value("gravity")
	assert.True(errors.Is(err, ErrUnknownParameter))
	err = s.SetValue("gravity", 1)
	assert.True(errors.Is(err, ErrUnknownParameter))
	assert.Equal(DefaultParameters, s.Get())
}

func TestDefaultParameters(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(198.163, DefaultParameters.K, 0.001)
	assert.Equal(30000.0, DefaultParameters.MaxDiameter)
}

// every Get must observe one Set as a whole, never a mix of two
func TestParameterStore_consistentSnapshot(t *testing.T) {
	s := NewParameterStore(Parameters{})
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			v := float64(i)
			s.Set(Parameters{Repulsion: v, Attraction: v, Center: v, K: v, MaxStep: v, MaxDiameter: v})
		}
	}()
	torn := 0
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			p := s.Get()
			if p.Repulsion != p.Attraction || p.Attraction != p.Center || p.Center != p.K ||
				p.K != p.MaxStep || p.MaxStep != p.MaxDiameter {
				torn++
			}
		}
	}()
	wg.Wait()
	assert.Zero(t, torn)
}
