package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/depgraph-layout/layout"
)

// Controller serves the JSON control surface of a Layouter.
type Controller struct {
	layouter Layouter
}

func NewController(l Layouter) *Controller {
	return &Controller{layouter: l}
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type ParameterResponse struct {
	Name  layout.Parameter `json:"name"`
	Value float64          `json:"value"`
}

// Routes returns the handlers for
//
//	GET /parameters
//	PUT /parameters
//	GET /parameters/{name}
//	PUT /parameters/{name}
//	GET /layout
func (c *Controller) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/parameters", c.GetParameters)
	r.Put("/parameters", c.PutParameters)
	r.Get("/parameters/{name}", c.GetParameter)
	r.Put("/parameters/{name}", c.PutParameter)
	r.Get("/layout", c.GetLayout)
	return r
}

func (c *Controller) GetParameters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, c.layouter.Parameters(r.Context()))
}

func (c *Controller) PutParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := ParametersRequest{}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := c.layouter.SetParameters(ctx, req.Parameters()); err != nil {
		respondError(w, r, statusOf(err), err)
		return
	}
	respondJSON(w, r, http.StatusOK, c.layouter.Parameters(ctx))
}

func (c *Controller) GetParameter(w http.ResponseWriter, r *http.Request) {
	name := layout.Parameter(chi.URLParam(r, "name"))
	value, err := c.layouter.Parameters(r.Context()).Value(name)
	if err != nil {
		respondError(w, r, statusOf(err), err)
		return
	}
	respondJSON(w, r, http.StatusOK, ParameterResponse{Name: name, Value: value})
}

func (c *Controller) PutParameter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := layout.Parameter(chi.URLParam(r, "name"))
	req := ParameterRequest{}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := formatValidationError(validate.Struct(req)); err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := c.layouter.SetParameter(ctx, name, *req.Value); err != nil {
		respondError(w, r, statusOf(err), err)
		return
	}
	respondJSON(w, r, http.StatusOK, c.layouter.Parameters(ctx))
}

func (c *Controller) GetLayout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, c.layouter.View(r.Context()))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, layout.ErrUnknownParameter):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidParameter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Msgf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Msgf("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		log.Ctx(r.Context()).Warn().Msgf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	respondJSON(w, r, status, ErrorResponse{Message: err.Error()})
}
