package llm

import (
	"regexp"
	"sort"
	"strings"
)

// Price is a model's list price in USD per million tokens.
type Price struct {
	Input  float64
	Output float64
}

// Cost returns the USD cost of one call's token counts.
func (p Price) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1_000_000
}

// prices covers the models the provider aliases resolve to.
var prices = map[string]Price{
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-sonnet-4-5-20250929": {3, 15},
	"gpt-4o":                     {2.5, 10},
	"gpt-4o-mini":                {0.15, 0.6},
	"gpt-4.1":                    {2, 8},
	"gemini-2.5-flash":           {0.3, 2.5},
	"gemini-2.5-pro":             {1.25, 10},
}

// datedSnapshot matches the "-2024-07-18" suffix OpenAI appends to the
// model it reports back.
var datedSnapshot = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)

// PriceFor returns the price of a model ID as recorded in the audit log.
// OpenRouter vendor prefixes and dated snapshots are reduced to the base ID.
func PriceFor(model string) (Price, bool) {
	id := model
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	if p, ok := prices[id]; ok {
		return p, true
	}
	p, ok := prices[datedSnapshot.ReplaceAllString(id, "")]
	return p, ok
}

// Bill accumulates estimated spend over recorded calls.
type Bill struct {
	Total    float64
	unpriced map[string]bool
}

// Add prices one usage row and returns its cost. ok is false when the model
// has no known price; the row then adds nothing and the bill is partial.
func (b *Bill) Add(model string, inputTokens, outputTokens int) (cost float64, ok bool) {
	p, ok := PriceFor(model)
	if !ok {
		if b.unpriced == nil {
			b.unpriced = make(map[string]bool)
		}
		b.unpriced[model] = true
		return 0, false
	}
	cost = p.Cost(inputTokens, outputTokens)
	b.Total += cost
	return cost, true
}

// Partial reports whether any added row could not be priced.
func (b *Bill) Partial() bool { return len(b.unpriced) > 0 }

// Unpriced lists the models without a known price, sorted.
func (b *Bill) Unpriced() []string {
	out := make([]string, 0, len(b.unpriced))
	for m := range b.unpriced {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
