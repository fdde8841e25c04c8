// Package server exposes the projection engine over HTTP for the form
// and summary screens. Payloads mirror the input/output contracts: a
// per-person profile in, rows plus lifetime totals out.
package server

import (
	"log"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/lifeplan/income-engine/internal/calculation"
	"github.com/lifeplan/income-engine/internal/config"
	"github.com/lifeplan/income-engine/internal/domain"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server routes projection requests to the calculation engine.
type Server struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
}

// New creates a server around an engine.
func New(engine *calculation.CalculationEngine) *Server {
	return &Server{
		engine: engine,
		parser: config.NewInputParser(),
	}
}

// ListenAndServe starts the server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("income engine listening on %s", addr)
	return fasthttp.ListenAndServe(addr, s.Handle)
}

// Handle dispatches a request by path.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/projection":
		s.handleProjection(ctx)
	case "/career":
		s.handleCareer(ctx)
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// handleProjection computes the household projection for a submitted plan.
func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var plan config.PlanInput
	if err := json.Unmarshal(ctx.PostBody(), &plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidatePlan(&plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	var partner *domain.PersonIncomeProfile
	var partnerCareer *calculation.CareerQuery
	if plan.Partner != nil {
		partner = &plan.Partner.Profile
		partnerCareer = plan.Partner.Career
	}
	household := s.engine.ProjectHousehold(&plan.Self.Profile, partner, plan.Self.Career, partnerCareer)

	writeJSON(ctx, household)
}

// handleCareer builds a 5-stage career plan from an occupation query.
func (s *Server) handleCareer(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var query calculation.CareerQuery
	if err := json.Unmarshal(ctx.PostBody(), &query); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	stages := calculation.BuildCareerPlan(query.Occupation, query.CurrentRank, query.DeclaredIncome, query.Outlook)
	writeJSON(ctx, stages)
}

func writeJSON(ctx *fasthttp.RequestCtx, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
