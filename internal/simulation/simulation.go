// Package simulation runs every combination of a product's option choices
// through constraint and price evaluation.
package simulation

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MaxCases caps a run unless sampling or a forced run is requested.
const MaxCases = 10000

const progressInterval = 100

// Choice is one selectable value of an option type.
type Choice struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// OptionType is an option with its choices.
type OptionType struct {
	ID      int64    `json:"id"`
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Choices []Choice `json:"choices"`
}

// Constraint actions.
const (
	ActionError = "error"
	ActionWarn  = "warn"
)

// Constraint flags a combination where source and target hold given values.
type Constraint struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	SourceField string `json:"sourceField"`
	SourceValue string `json:"sourceValue"`
	TargetField string `json:"targetField"`
	TargetValue string `json:"targetValue"`
	Action      string `json:"action"`
	Message     string `json:"message"`
	IsActive    bool   `json:"isActive"`
}

// PriceConfig is the flat price used when no pricing evaluator is supplied.
type PriceConfig struct {
	PricingModel string `json:"pricingModel"`
	BasePrice    int64  `json:"basePrice"`
}

// Input describes the product under simulation.
type Input struct {
	ProductID   int64
	OptionTypes []OptionType
	Constraints []Constraint
	PriceConfig PriceConfig
}

// Status is the verdict of one case.
type Status string

const (
	StatusPass  Status = "pass"
	StatusWarn  Status = "warn"
	StatusError Status = "error"
)

// Case is the outcome of one combination.
type Case struct {
	Selections map[string]string `json:"selections"`
	Status     Status            `json:"resultStatus"`
	TotalPrice *int64            `json:"totalPrice"`
	Violations []string          `json:"constraintViolations,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// Result summarizes a run. When TooLarge is set no case was evaluated.
type Result struct {
	TooLarge   bool   `json:"tooLarge,omitempty"`
	SampleSize int    `json:"sampleSize,omitempty"`
	Total      int    `json:"total"`
	Passed     int    `json:"passed"`
	Warned     int    `json:"warned"`
	Errored    int    `json:"errored"`
	Cases      []Case `json:"cases"`
}

// Evaluator decides the outcome of one combination.
type Evaluator func(ctx context.Context, selections map[string]string) (Case, error)

// Options tunes a run.
type Options struct {
	Sample     bool
	ForceRun   bool
	Seed       uint64
	Workers    int
	OnProgress func(done, total int)
	Evaluate   Evaluator
}

// Combinations is the cartesian product of the active choices of every
// option type, in option and choice order. Option types without an active
// choice are left out.
func Combinations(types []OptionType) []map[string]string {
	combos := []map[string]string{{}}
	found := false
	for _, ot := range types {
		active := activeChoices(ot)
		if len(active) == 0 {
			continue
		}
		found = true
		next := make([]map[string]string, 0, len(combos)*len(active))
		for _, base := range combos {
			for _, c := range active {
				m := make(map[string]string, len(base)+1)
				for k, v := range base {
					m[k] = v
				}
				m[ot.Key] = c.Code
				next = append(next, m)
			}
		}
		combos = next
	}
	if !found {
		return nil
	}
	return combos
}

// CombinationCount is len(Combinations(types)) without building them. It
// saturates at math.MaxInt.
func CombinationCount(types []OptionType) int {
	count, found := 1, false
	for _, ot := range types {
		n := len(activeChoices(ot))
		if n == 0 {
			continue
		}
		found = true
		if count > math.MaxInt/n {
			return math.MaxInt
		}
		count *= n
	}
	if !found {
		return 0
	}
	return count
}

// combinationAt returns combination i in Combinations order: the last option
// type varies fastest.
func combinationAt(types []OptionType, i int) map[string]string {
	m := map[string]string{}
	for k := len(types) - 1; k >= 0; k-- {
		active := activeChoices(types[k])
		if len(active) == 0 {
			continue
		}
		m[types[k].Key] = active[i%len(active)].Code
		i /= len(active)
	}
	return m
}

func activeChoices(ot OptionType) []Choice {
	var active []Choice
	for _, c := range ot.Choices {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active
}

// Run evaluates every combination of in. Above MaxCases it returns a
// TooLarge result unless opts asks to sample or force the run. Cases keep
// combination order regardless of worker scheduling.
func Run(ctx context.Context, in Input, opts Options) (Result, error) {
	var combos []map[string]string
	if count := CombinationCount(in.OptionTypes); count > MaxCases && !opts.ForceRun {
		if !opts.Sample {
			return Result{TooLarge: true, Total: count, SampleSize: MaxCases}, nil
		}
		combos = make([]map[string]string, 0, MaxCases)
		for _, i := range sampleIndices(count, MaxCases, opts.Seed) {
			combos = append(combos, combinationAt(in.OptionTypes, i))
		}
	} else {
		combos = Combinations(in.OptionTypes)
	}

	eval := opts.Evaluate
	if eval == nil {
		eval = DefaultEvaluator(in)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	cases := make([]Case, len(combos))
	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, combo := range combos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := eval(gctx, combo)
			if err != nil {
				return err
			}
			cases[i] = c

			mu.Lock()
			defer mu.Unlock()
			done++
			if opts.OnProgress != nil && done%progressInterval == 0 {
				opts.OnProgress(done, len(combos))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Total: len(combos), Cases: cases}
	for _, c := range cases {
		switch c.Status {
		case StatusPass:
			res.Passed++
		case StatusWarn:
			res.Warned++
		default:
			res.Errored++
		}
	}
	return res, nil
}

// Sample picks n combinations with a seeded shuffle.
func Sample(combos []map[string]string, n int, seed uint64) []map[string]string {
	if n >= len(combos) {
		return append([]map[string]string(nil), combos...)
	}
	out := make([]map[string]string, 0, n)
	for _, i := range sampleIndices(len(combos), n, seed) {
		out = append(out, combos[i])
	}
	return out
}

// sampleIndices draws n distinct indices below count with a partial
// Fisher-Yates shuffle. Only swapped positions are stored, so count may be
// far larger than n. n must not exceed count.
func sampleIndices(count, n int, seed uint64) []int {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	swapped := make(map[int]int, n)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		j := i + r.IntN(count-i)
		out[i] = at(j)
		swapped[j] = at(i)
	}
	return out
}

// CheckConstraints applies the active constraints to one combination. An
// error action wins over a warning; the last matching message of the winning
// kind is reported.
func CheckConstraints(selections map[string]string, constraints []Constraint) (Status, string) {
	var errMsg, warnMsg string
	var hasErr, hasWarn bool
	for _, c := range constraints {
		if !c.IsActive || selections[c.SourceField] != c.SourceValue || selections[c.TargetField] != c.TargetValue {
			continue
		}
		switch c.Action {
		case ActionError:
			hasErr, errMsg = true, c.Message
		case ActionWarn:
			hasWarn, warnMsg = true, c.Message
		}
	}
	switch {
	case hasErr:
		return StatusError, errMsg
	case hasWarn:
		return StatusWarn, warnMsg
	}
	return StatusPass, ""
}

// DefaultEvaluator checks constraints and prices every surviving case at
// the configured base price.
func DefaultEvaluator(in Input) Evaluator {
	return func(_ context.Context, sel map[string]string) (Case, error) {
		status, msg := CheckConstraints(sel, in.Constraints)
		c := Case{Selections: sel, Status: status, Message: msg}
		if status == StatusError {
			c.Violations = []string{msg}
			return c, nil
		}
		price := in.PriceConfig.BasePrice
		c.TotalPrice = &price
		return c, nil
	}
}
