package controller

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/suxatcode/depgraph-layout/layout"
)

func TestValidateParameters(t *testing.T) {
	for _, test := range []struct {
		Name          string
		Modify        func(*layout.Parameters)
		ExpectMessage string
	}{
		{Name: "defaults are valid", Modify: func(p *layout.Parameters) {}},
		{Name: "zero forces are valid", Modify: func(p *layout.Parameters) {
			p.Repulsion, p.Attraction, p.Center, p.MaxStep = 0, 0, 0, 0
		}},
		{Name: "negative repulsion", Modify: func(p *layout.Parameters) { p.Repulsion = -1 }, ExpectMessage: "repulsion: must be >= 0"},
		{Name: "negative attraction", Modify: func(p *layout.Parameters) { p.Attraction = -0.1 }, ExpectMessage: "attraction: must be >= 0"},
		{Name: "negative center", Modify: func(p *layout.Parameters) { p.Center = -1e-5 }, ExpectMessage: "center: must be >= 0"},
		{Name: "zero k", Modify: func(p *layout.Parameters) { p.K = 0 }, ExpectMessage: "k: must be > 0"},
		{Name: "negative max_step", Modify: func(p *layout.Parameters) { p.MaxStep = -10 }, ExpectMessage: "max_step: must be >= 0"},
		{Name: "zero max_diameter", Modify: func(p *layout.Parameters) { p.MaxDiameter = 0 }, ExpectMessage: "max_diameter: must be > 0"},
		{Name: "NaN", Modify: func(p *layout.Parameters) { p.Attraction = math.NaN() }, ExpectMessage: "attraction: must be a finite number"},
		{Name: "infinity", Modify: func(p *layout.Parameters) { p.MaxStep = math.Inf(1) }, ExpectMessage: "max_step: must be a finite number"},
	} {
		t.Run(test.Name, func(t *testing.T) {
			p := layout.DefaultParameters
			test.Modify(&p)
			err := ValidateParameters(p)
			assert := assert.New(t)
			if test.ExpectMessage == "" {
				assert.NoError(err)
				return
			}
			assert.True(errors.Is(err, ErrInvalidParameter), err)
			assert.Contains(err.Error(), test.ExpectMessage)
		})
	}
}

func TestValidateParameter(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(ValidateParameter(layout.ParamRepulsion, 0))
	assert.NoError(ValidateParameter(layout.ParamK, 0.5))

	err := ValidateParameter(layout.ParamK, 0)
	assert.True(errors.Is(err, ErrInvalidParameter))
	assert.Contains(err.Error(), "k: must be > 0")

	err = ValidateParameter(layout.ParamCenter, -1)
	assert.True(errors.Is(err, ErrInvalidParameter))
	assert.Contains(err.Error(), "center: must be >= 0")

	err = ValidateParameter("gravity", 1)
	assert.True(errors.Is(err, layout.ErrUnknownParameter))
}

func TestParametersRequest(t *testing.T) {
	req := NewParametersRequest(layout.DefaultParameters)
	assert := assert.New(t)
	assert.NoError(req.Validate())
	assert.Equal(layout.DefaultParameters, req.Parameters())

	req.Center = nil
	err := req.Validate()
	assert.True(errors.Is(err, ErrInvalidParameter))
	assert.Contains(err.Error(), "center: field is required")
}
