package controller

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/suxatcode/depgraph-layout/layout"
)

var ErrInvalidParameter = errors.New("invalid parameter")

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
}

// ParametersRequest is the body of a request replacing all parameters. Every
// field has to be present.
type ParametersRequest struct {
	Repulsion   *float64 `json:"repulsion" validate:"required,finite,gte=0"`
	Attraction  *float64 `json:"attraction" validate:"required,finite,gte=0"`
	Center      *float64 `json:"center" validate:"required,finite,gte=0"`
	K           *float64 `json:"k" validate:"required,finite,gt=0"`
	MaxStep     *float64 `json:"max_step" validate:"required,finite,gte=0"`
	MaxDiameter *float64 `json:"max_diameter" validate:"required,finite,gt=0"`
}

// ParameterRequest is the body of a request setting a single parameter.
type ParameterRequest struct {
	Value *float64 `json:"value" validate:"required"`
}

var parameterRules = map[layout.Parameter]string{
	layout.ParamRepulsion:   "finite,gte=0",
	layout.ParamAttraction:  "finite,gte=0",
	layout.ParamCenter:      "finite,gte=0",
	layout.ParamK:           "finite,gt=0",
	layout.ParamMaxStep:     "finite,gte=0",
	layout.ParamMaxDiameter: "finite,gt=0",
}

func NewParametersRequest(p layout.Parameters) ParametersRequest {
	return ParametersRequest{
		Repulsion: &p.Repulsion, Attraction: &p.Attraction, Center: &p.Center,
		K: &p.K, MaxStep: &p.MaxStep, MaxDiameter: &p.MaxDiameter,
	}
}

func (r ParametersRequest) Parameters() layout.Parameters {
	return layout.Parameters{
		Repulsion: *r.Repulsion, Attraction: *r.Attraction, Center: *r.Center,
		K: *r.K, MaxStep: *r.MaxStep, MaxDiameter: *r.MaxDiameter,
	}
}

// Validate checks that all fields are present and in range.
func (r ParametersRequest) Validate() error {
	return formatValidationError(validate.Struct(r))
}

// ValidateParameters checks all six values: repulsion, attraction, center and
// max_step must be >= 0, k and max_diameter > 0.
func ValidateParameters(p layout.Parameters) error {
	return NewParametersRequest(p).Validate()
}

// ValidateParameter checks a single named value with the same rules as
// ValidateParameters.
func ValidateParameter(name layout.Parameter, value float64) error {
	rule, ok := parameterRules[name]
	if !ok {
		return errors.Wrapf(layout.ErrUnknownParameter, "'%s'", name)
	}
	if err := validate.Var(value, rule); err != nil {
		return formatValidationError(err, string(name))
	}
	return nil
}

// formatValidationError reports the first failed rule. field overrides the
// field name, validate.Var does not know it.
func formatValidationError(err error, field ...string) error {
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, e := range validationErrs {
		name := e.Field()
		if len(field) > 0 {
			name = field[0]
		}
		var msg string
		switch e.Tag() {
		case "required":
			msg = "field is required"
		case "finite":
			msg = "must be a finite number"
		case "gte":
			msg = fmt.Sprintf("must be >= %s", e.Param())
		case "gt":
			msg = fmt.Sprintf("must be > %s", e.Param())
		default:
			msg = fmt.Sprintf("validation failed (%s)", e.Tag())
		}
		return errors.Wrapf(ErrInvalidParameter, "%s: %s", name, msg)
	}
	return err
}
