package api

import (
	"math"
	"sync"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestPriceFor(t *testing.T) {
	tests := []struct {
		model anthropic.Model
		want  Price
	}{
		{anthropic.ModelClaudeSonnet4_20250514, Price{3, 15}},
		{"claude-opus-4-1-20250805", Price{15, 75}},
		{"claude-haiku-4-5-20251001", Price{1, 5}},
		{anthropic.ModelClaude3_5Haiku20241022, Price{0.8, 4}},
		{"us.anthropic.claude-opus-4-1-20250805-v1:0", Price{15, 75}},
		{"something-else", Price{3, 15}},
	}

	for _, tt := range tests {
		if got := PriceFor(tt.model); got != tt.want {
			t.Errorf("PriceFor(%q) = %+v, want %+v", tt.model, got, tt.want)
		}
	}
}

func TestTokenTracker_Accumulates(t *testing.T) {
	tracker := NewTokenTracker(DefaultModel)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Add(100, 50)
		}()
	}
	wg.Wait()

	input, output := tracker.Total()
	if input != 1000 || output != 500 {
		t.Errorf("Total() = %d, %d; want 1000, 500", input, output)
	}
	if tracker.Calls() != 10 {
		t.Errorf("Calls = %d, want 10", tracker.Calls())
	}

	tracker.Reset()
	input, output = tracker.Total()
	if input != 0 || output != 0 || tracker.Calls() != 0 {
		t.Errorf("after Reset: %d, %d, %d calls", input, output, tracker.Calls())
	}
}

func TestTokenTracker_Cost(t *testing.T) {
	tests := []struct {
		model         anthropic.Model
		input, output int64
		want          float64
	}{
		{DefaultModel, 1_000_000, 1_000_000, 18.0},
		{DefaultModel, 1000, 1000, 0.018},
		{"claude-opus-4-1-20250805", 1_000_000, 0, 15.0},
		{DefaultModel, 0, 0, 0},
	}

	for _, tt := range tests {
		tracker := NewTokenTracker(tt.model)
		tracker.Add(tt.input, tt.output)
		if got := tracker.Cost(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Cost(%s, %d, %d) = %f, want %f", tt.model, tt.input, tt.output, got, tt.want)
		}
	}
}
