package constraints

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBudget is how long one evaluation may take before the cache falls
// back to a previous result.
const DefaultBudget = 50 * time.Millisecond

// DefaultMaxEntries bounds the number of cached evaluations. A full cache is
// emptied before the next insert.
const DefaultMaxEntries = 4096

// Cache memoizes constraint evaluations by product and selections. It is safe
// for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries    map[string]EvalResult
	maxEntries int
	budget     time.Duration
	now        func() time.Time
	eval       func(EvalInput) (EvalResult, error)
	log        zerolog.Logger
}

// NewCache returns an empty cache that logs slow evaluations to log.
func NewCache(log zerolog.Logger) *Cache {
	return &Cache{
		entries:    map[string]EvalResult{},
		maxEntries: DefaultMaxEntries,
		budget:     DefaultBudget,
		now:        time.Now,
		eval:       Evaluate,
		log:        log,
	}
}

// CacheKey is "productId:" followed by the selections as sorted key=choice
// pairs joined with commas.
func CacheKey(in EvalInput) string {
	pairs := make([]string, 0, len(in.Selections))
	for k, s := range in.Selections {
		pairs = append(pairs, k+"="+s.ChoiceCode)
	}
	sort.Strings(pairs)
	return strconv.FormatInt(in.ProductID, 10) + ":" + strings.Join(pairs, ",")
}

// Evaluate runs the constraint evaluation. When it overruns the budget a
// warning is logged and a previously cached result for the same key, if any,
// is returned instead. Otherwise the fresh result is cached and returned.
func (c *Cache) Evaluate(in EvalInput) (EvalResult, error) {
	key := CacheKey(in)
	start := c.now()
	res, err := c.eval(in)
	if err != nil {
		return EvalResult{}, err
	}
	elapsed := c.now().Sub(start)

	c.mu.Lock()
	defer c.mu.Unlock()
	if elapsed > c.budget {
		c.log.Warn().
			Str("key", key).
			Dur("elapsed", elapsed).
			Msgf("constraint evaluation exceeded %dms", c.budget.Milliseconds())
		if cached, ok := c.entries[key]; ok {
			return cached, nil
		}
	}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.log.Debug().Int("entries", len(c.entries)).Msg("constraint cache full, clearing")
		c.entries = make(map[string]EvalResult, c.maxEntries)
	}
	c.entries[key] = res
	return res, nil
}

// Invalidate drops every cached evaluation of productID.
func (c *Cache) Invalidate(productID int64) {
	prefix := strconv.FormatInt(productID, 10) + ":"
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
