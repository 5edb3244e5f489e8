package restserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chrissnell/wildfire/internal/constants"
	"github.com/chrissnell/wildfire/pkg/behave"
	"github.com/chrissnell/wildfire/pkg/responseformat"
	"github.com/chrissnell/wildfire/pkg/sensitivity"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// Solve handles POST /solve
func (h *Handlers) Solve(w http.ResponseWriter, req *http.Request) {
	var body ScenarioRequest
	if err := h.decode(req, &body); err != nil {
		h.fail(w, req, err)
		return
	}

	sd := body.scenario()
	solver := behave.NewSolver(sd.SolverConfig(), h.controller.logger)
	st, err := solver.Solve(sd.FuelComplex(), sd.Env())
	if err != nil {
		h.fail(w, req, err)
		return
	}

	h.write(w, req, SolveResponse{ID: requestID(req), Name: body.Name, State: st})
}

// Sensitivity handles POST /sensitivity
func (h *Handlers) Sensitivity(w http.ResponseWriter, req *http.Request) {
	var body SensitivityRequest
	if err := h.decode(req, &body); err != nil {
		h.fail(w, req, err)
		return
	}

	if body.Samples < 0 || body.Samples > maxSamples {
		h.fail(w, req, badRequest(fmt.Errorf("samples must be between 0 and %d, got %d", maxSamples, body.Samples)))
		return
	}

	sd := body.scenario()
	sd.StdDev = body.StdDev
	sd.Correlation = body.Correlation
	in, err := sd.SensitivityInput()
	if err != nil {
		h.fail(w, req, err)
		return
	}

	solver := behave.NewSolver(sd.SolverConfig(), h.controller.logger)
	fuel, env := sd.FuelComplex(), sd.Env()
	st, err := solver.Solve(fuel, env)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	report, err := h.controller.engine.Propagate(st, in)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	resp := SensitivityResponse{ID: requestID(req), Name: body.Name, State: st, Report: report}
	if body.Samples > 0 {
		resp.Sample, err = h.controller.engine.Sample(req.Context(), solver, fuel, env, in, sensitivity.SampleOptions{
			N:       body.Samples,
			Seed:    body.Seed,
			Workers: h.controller.serverConfig.Workers,
		})
		if err != nil {
			h.fail(w, req, err)
			return
		}
	}

	h.write(w, req, resp)
}

// Batch handles POST /batch. Every scenario is solved with the default
// solver configuration, so per-scenario no-data values and preheat blocks
// are rejected.
func (h *Handlers) Batch(w http.ResponseWriter, req *http.Request) {
	var body BatchRequest
	if err := h.decode(req, &body); err != nil {
		h.fail(w, req, err)
		return
	}

	scenarios := make([]behave.Scenario, len(body.Scenarios))
	for i, sr := range body.Scenarios {
		if sr.NoData != nil || sr.Preheat != nil {
			h.fail(w, req, badRequest(fmt.Errorf("scenario %d: nodata and preheat are not supported in a batch", i)))
			return
		}
		sd := sr.scenario()
		scenarios[i] = behave.Scenario{Fuel: sd.FuelComplex(), Environment: sd.Env()}
	}

	solver := behave.NewSolver(behave.DefaultConfig(), h.controller.logger)
	states, err := solver.SolveAll(req.Context(), scenarios, h.controller.serverConfig.Workers)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	h.write(w, req, BatchResponse{ID: requestID(req), States: states})
}

// Version handles GET /version
func (h *Handlers) Version(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, VersionResponse{Version: constants.Version})
}

// decode reads the request body as MessagePack when the client says so,
// JSON otherwise.
func (h *Handlers) decode(req *http.Request, v any) error {
	format := responseformat.JSON
	if req.Header.Get("Content-Type") == responseformat.MsgPack.ContentType() {
		format = responseformat.MsgPack
	}
	if err := responseformat.Decode(req.Body, format, v); err != nil {
		return badRequest(fmt.Errorf("decoding request: %w", err))
	}
	return nil
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, http.StatusOK, data); err != nil {
		h.controller.logger.Errorw("error writing response", "request_id", requestID(req), "error", err)
	}
}

// fail maps err to a status and writes it
func (h *Handlers) fail(w http.ResponseWriter, req *http.Request, err error) {
	status, field := statusFor(err)
	if status == http.StatusInternalServerError {
		h.controller.logger.Errorw("request failed", "request_id", requestID(req), "error", err)
	}
	if werr := h.formatter.WriteError(w, req, status, err, field); werr != nil {
		h.controller.logger.Errorw("error writing error response", "request_id", requestID(req), "error", werr)
	}
}

// requestError marks a malformed request
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{err: err}
}

// statusFor maps solver and engine errors to HTTP statuses. The field is
// the offending input, when one is known.
func statusFor(err error) (int, string) {
	var field string
	var inputErr *behave.InputError
	if errors.As(err, &inputErr) {
		field = inputErr.Field
	}

	var tooLarge *http.MaxBytesError
	var reqErr *requestError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, field
	case errors.As(err, &reqErr),
		errors.Is(err, behave.ErrInvalidInput),
		errors.Is(err, behave.ErrUnknownInput),
		errors.Is(err, sensitivity.ErrInvalidCorrelation),
		errors.Is(err, sensitivity.ErrInvalidStdDev):
		return http.StatusBadRequest, field
	case errors.Is(err, sensitivity.ErrNonDifferentiable):
		return http.StatusUnprocessableEntity, field
	default:
		return http.StatusInternalServerError, field
	}
}
