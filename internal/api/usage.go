package api

import (
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
)

// Price is the USD cost per million tokens.
type Price struct {
	Input  float64
	Output float64
}

var (
	sonnetPrice  = Price{Input: 3, Output: 15}
	opusPrice    = Price{Input: 15, Output: 75}
	haiku3Price  = Price{Input: 0.8, Output: 4}
	haiku45Price = Price{Input: 1, Output: 5}
)

// PriceFor returns list pricing for model, matched by model family. Unknown
// models are priced as Sonnet.
func PriceFor(model anthropic.Model) Price {
	m := string(model)
	switch {
	case strings.Contains(m, "opus"):
		return opusPrice
	case strings.Contains(m, "haiku-4"):
		return haiku45Price
	case strings.Contains(m, "haiku"):
		return haiku3Price
	default:
		return sonnetPrice
	}
}

// TokenTracker accumulates token usage of the calls made by one client.
// It is safe for concurrent use.
type TokenTracker struct {
	mu     sync.Mutex
	price  Price
	input  int64
	output int64
	calls  int
}

// NewTokenTracker creates a tracker priced for model.
func NewTokenTracker(model anthropic.Model) *TokenTracker {
	return &TokenTracker{price: PriceFor(model)}
}

// Add records the usage of one call.
func (t *TokenTracker) Add(input, output int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input += input
	t.output += output
	t.calls++
}

// Total returns the input and output tokens recorded so far.
func (t *TokenTracker) Total() (input, output int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input, t.output
}

// Calls returns the number of recorded calls.
func (t *TokenTracker) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// Reset clears the recorded usage.
func (t *TokenTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input, t.output, t.calls = 0, 0, 0
}

// Cost estimates the USD cost of the recorded usage.
func (t *TokenTracker) Cost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(t.input)/1_000_000*t.price.Input + float64(t.output)/1_000_000*t.price.Output
}
