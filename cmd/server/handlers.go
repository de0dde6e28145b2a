package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/printquote/internal/catalog"
	"github.com/Simplici0/printquote/internal/constraints"
	"github.com/Simplici0/printquote/internal/options"
	"github.com/Simplici0/printquote/internal/pricing"
	"github.com/Simplici0/printquote/internal/publish"
	"github.com/Simplici0/printquote/internal/quote"
	"github.com/Simplici0/printquote/internal/simulation"
)

const defaultSimulationQuantity = 100

const codeConstraintViolation = "CONSTRAINT_VIOLATION"

type errorResponse struct {
	Error            string                        `json:"error"`
	Code             string                        `json:"code,omitempty"`
	Violations       []options.ConstraintViolation `json:"violations,omitempty"`
	ValidationErrors []options.ValidationError     `json:"validationErrors,omitempty"`
}

type selectRequest struct {
	Selections map[string]string `json:"selections"`
	OptionKey  string            `json:"optionKey"`
	ChoiceCode string            `json:"choiceCode"`
}

type selectResponse struct {
	State       options.State          `json:"state"`
	Constraints constraints.EvalResult `json:"constraints"`
}

type quoteRequest struct {
	Selections   map[string]string           `json:"selections"`
	Quantity     int                         `json:"quantity"`
	SizeID       int64                       `json:"sizeId"`
	CustomWidth  *float64                    `json:"customWidth"`
	CustomHeight *float64                    `json:"customHeight"`
	PageCount    int                         `json:"pageCount"`
	Foil         *pricing.FoilEmboss         `json:"foil"`
	Additional   []pricing.AdditionalProduct `json:"additionalProducts"`
}

type quoteDetailResponse struct {
	Quote   quote.Quote `json:"quote"`
	IsValid bool        `json:"isValid"`
}

type publishResponse struct {
	Publishable  bool           `json:"publishable"`
	MissingItems []publish.Item `json:"missingItems"`
	Completeness publish.Result `json:"completeness"`
}

type simulateRequest struct {
	Sample    bool   `json:"sample"`
	ForceRun  bool   `json:"forceRun"`
	Seed      uint64 `json:"seed"`
	Quantity  int    `json:"quantity"`
	PageCount int    `json:"pageCount"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	p, err := s.store.LoadProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.store.LoadProductData(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"product": p,
		"options": options.Resolve(options.ContextFor(data, nil)),
	})
}

func (s *server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req selectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	if _, err := s.store.LoadProduct(ctx, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.store.LoadProductData(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	state, err := replaySelections(data, req.Selections)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.OptionKey != "" {
		if state, err = options.HandleOptionChange(state, req.OptionKey, req.ChoiceCode); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	eval, err := s.evaluateConstraints(ctx, data, state.Selections)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if state.Status == options.StatusSelecting {
		if state, err = options.Transition(state, options.Validate{Violations: eval.Violations}); err != nil {
			s.writeError(w, r, err)
			return
		}
		if state, err = options.Finalize(state); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, selectResponse{State: state, Constraints: eval})
}

// replaySelections loads data into a fresh session and applies the given
// selections phase by phase, so that no replayed choice is reset by a later
// one.
func replaySelections(data options.ProductData, sel map[string]string) (options.State, error) {
	state, err := options.Transition(options.NewState(), options.LoadProduct{ProductID: data.ProductID})
	if err != nil {
		return state, err
	}
	if state, err = options.Transition(state, options.ProductLoaded{Data: data}); err != nil {
		return state, err
	}

	classes := make(map[string]options.OptionClass, len(data.ProductOptions))
	for _, o := range data.ProductOptions {
		classes[o.Key] = o.OptionClass
	}
	keys := make([]string, 0, len(sel))
	for k := range sel {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := options.PhaseIndex(classes[keys[i]]), options.PhaseIndex(classes[keys[j]])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		if state, err = options.Transition(state, options.SelectOption{OptionKey: k, ChoiceCode: sel[k]}); err != nil {
			return state, err
		}
	}
	return state, nil
}

// evaluateConstraints merges the implicit constraint layer under the explicit
// one and evaluates the result through the shared cache.
func (s *server) evaluateConstraints(ctx context.Context, data options.ProductData, sel options.Selections) (constraints.EvalResult, error) {
	implicit, err := s.store.ImplicitConstraints(ctx, data.ProductID)
	if err != nil {
		return constraints.EvalResult{}, err
	}
	lk, err := s.store.LoadLookupData(ctx, data.ProductID)
	if err != nil {
		return constraints.EvalResult{}, err
	}
	return s.cache.Evaluate(constraints.EvalInput{
		ProductID:   data.ProductID,
		Selections:  sel,
		Constraints: constraints.MergeLayers(data.Constraints, implicit).Rules(),
		Papers:      lk.Papers,
	})
}

func (s *server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req quoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := s.loadCatalog(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.checkSelections(w, r, c.Data, req.Selections) {
		return
	}
	in, selected, err := catalog.BuildPricingInput(c, catalog.PriceRequest{
		Quantity:     req.Quantity,
		Selections:   toSelections(req.Selections),
		SizeID:       req.SizeID,
		CustomWidth:  req.CustomWidth,
		CustomHeight: req.CustomHeight,
		PageCount:    req.PageCount,
		Foil:         req.Foil,
		Additional:   req.Additional,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := pricing.Calculate(in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q, err := s.assembler.Assemble(quote.Input{
		ProductID:       c.Product.ID,
		ProductName:     c.Product.Name,
		Pricing:         res,
		SelectedOptions: selected,
		Quantity:        req.Quantity,
		Size:            pricing.SizeOf(in),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.SaveQuote(r.Context(), q); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info().Str("quote_id", q.QuoteID).Int64("product_id", q.ProductID).Int64("total", q.TotalPrice).Msg("quote created")
	writeJSON(w, http.StatusCreated, q)
}

// checkSelections replays sel and rejects it with 422 when a required option
// is missing or a constraint is violated.
func (s *server) checkSelections(w http.ResponseWriter, r *http.Request, data options.ProductData, sel map[string]string) bool {
	state, err := replaySelections(data, sel)
	if err != nil {
		s.writeError(w, r, err)
		return false
	}
	if len(state.ValidationErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:            state.ValidationErrors[0].Message,
			Code:             options.CodeRequiredOptionMissing,
			ValidationErrors: state.ValidationErrors,
		})
		return false
	}
	eval, err := s.evaluateConstraints(r.Context(), data, state.Selections)
	if err != nil {
		s.writeError(w, r, err)
		return false
	}
	if len(eval.Violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:      eval.Violations[0].Message,
			Code:       codeConstraintViolation,
			Violations: eval.Violations,
		})
		return false
	}
	return true
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.store.ListQuotes(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"query": query, "quotes": quotes})
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	q, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteDetailResponse{Quote: q, IsValid: s.assembler.Valid(q)})
}

func (s *server) handleCompleteness(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	in, err := s.store.CompletenessInput(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publish.CheckCompleteness(in))
}

func (s *server) handlePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	in, err := s.store.CompletenessInput(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := publish.ValidatePublishReadiness(in)
	var perr *publish.Error
	if errors.As(err, &perr) {
		s.log.Info().Int64("product_id", id).Err(err).Msg("publish rejected")
		writeJSON(w, http.StatusConflict, publishResponse{MissingItems: perr.MissingItems, Completeness: res})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cache.Invalidate(id)
	writeJSON(w, http.StatusOK, publishResponse{Publishable: true, MissingItems: []publish.Item{}, Completeness: res})
}

func (s *server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req simulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = defaultSimulationQuantity
	}

	ctx := r.Context()
	c, err := s.loadCatalog(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	in, err := s.store.SimulationInput(ctx, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := simulation.Run(ctx, in, simulation.Options{
		Sample:   req.Sample,
		ForceRun: req.ForceRun,
		Seed:     req.Seed,
		Workers:  s.workers,
		Evaluate: pricedEvaluator(c, in.Constraints, req.Quantity, req.PageCount),
		OnProgress: func(done, total int) {
			s.log.Debug().Int64("product_id", id).Int("done", done).Int("total", total).Msg("simulation progress")
		},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info().
		Int64("product_id", id).
		Int("total", res.Total).
		Int("passed", res.Passed).
		Int("warned", res.Warned).
		Int("errored", res.Errored).
		Msg("simulation finished")
	writeJSON(w, http.StatusOK, res)
}

// pricedEvaluator checks simulation rules first and prices every combination
// that survives them. A combination that cannot be priced is an error case.
func pricedEvaluator(c catalog.Catalog, rules []simulation.Constraint, quantity, pageCount int) simulation.Evaluator {
	return func(_ context.Context, sel map[string]string) (simulation.Case, error) {
		status, msg := simulation.CheckConstraints(sel, rules)
		cs := simulation.Case{Selections: sel, Status: status, Message: msg}
		if status == simulation.StatusError {
			cs.Violations = []string{msg}
			return cs, nil
		}

		in, _, err := catalog.BuildPricingInput(c, catalog.PriceRequest{
			Quantity:   quantity,
			PageCount:  pageCount,
			Selections: toSelections(sel),
		})
		var res pricing.Result
		if err == nil {
			res, err = pricing.Calculate(in)
		}
		if err != nil {
			cs.Status = simulation.StatusError
			cs.Message = err.Error()
			cs.Violations = append(cs.Violations, err.Error())
			return cs, nil
		}
		total := res.Totals.Total
		cs.TotalPrice = &total
		return cs, nil
	}
}

func (s *server) loadCatalog(ctx context.Context, id int64) (catalog.Catalog, error) {
	p, err := s.store.LoadProduct(ctx, id)
	if err != nil {
		return catalog.Catalog{}, err
	}
	data, err := s.store.LoadProductData(ctx, id)
	if err != nil {
		return catalog.Catalog{}, err
	}
	lk, err := s.store.LoadLookupData(ctx, id)
	if err != nil {
		return catalog.Catalog{}, err
	}
	sizes, err := s.store.Sizes(ctx, id)
	if err != nil {
		return catalog.Catalog{}, err
	}
	return catalog.Catalog{Product: p, Data: data, Lookup: lk, Sizes: sizes}, nil
}

func toSelections(sel map[string]string) options.Selections {
	out := make(options.Selections, len(sel))
	for k, code := range sel {
		out[k] = options.SelectedOption{OptionKey: k, ChoiceCode: code}
	}
	return out
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return 0, false
	}
	return id, true
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
	return false
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		perr *pricing.Error
		cerr *constraints.ConstraintError
		oerr *options.OptionError
	)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrIncompleteSelection):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "INCOMPLETE_SELECTION"})
	case errors.As(err, &perr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: perr.Code})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: cerr.Code})
	case errors.As(err, &oerr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Code: oerr.Code})
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
