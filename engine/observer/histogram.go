package observer

import (
	"fmt"
	"math"

	"github.com/meenmo/molibsim/engine/agent"
)

// Histogram buckets observed outcomes into equally spaced bins over the
// observed range (spec §4.10 "Histogram — order 1 or 2, optional PDF
// normalisation"). Order 1 assigns each outcome's full weight to its
// nearest bin; order 2 splits the weight linearly between the two
// bracketing bins, which is the smoother ("second-order") histogram the
// spec distinguishes from plain nearest-bin counting.
//
// Binning happens once, in End, because the bin edges are derived from
// the observed min/max and are not known in advance; every raw
// (value, weight) pair is buffered during Observe the way Scenarios does.
type Histogram struct {
	source
	bins    int
	order   int
	pdf     bool
	outcomes []Outcome

	min, max float64
	counts   []float64
}

// NewHistogram constructs a Histogram observer with the given bin count
// and order (1 or 2). If pdf is true, Counts returns a probability
// density (counts normalised by total weight and bin width) rather than
// raw weighted counts.
func NewHistogram(lens Lens, bins, order int, pdf bool) *Histogram {
	return &Histogram{source: source{lens: lens}, bins: bins, order: order, pdf: pdf}
}

func (h *Histogram) Init(root agent.Agent) error {
	if h.bins <= 0 {
		return fmt.Errorf("Histogram.Init: %w", agent.ErrInvalidArgument)
	}
	if h.order != 1 && h.order != 2 {
		return fmt.Errorf("Histogram.Init: %w", agent.ErrInvalidArgument)
	}
	h.bind(root)
	return nil
}

func (h *Histogram) Observe(weight float64) error {
	h.outcomes = append(h.outcomes, Outcome{Value: h.value(), Weight: weight})
	return nil
}

// End builds the bin edges from the observed range and assigns every
// buffered outcome to its bin(s), per h.order. A degenerate range (every
// outcome identical) places all weight in bin 0.
func (h *Histogram) End() error {
	if len(h.outcomes) == 0 {
		h.counts = make([]float64, h.bins)
		return nil
	}
	h.min, h.max = h.outcomes[0].Value, h.outcomes[0].Value
	for _, o := range h.outcomes[1:] {
		if o.Value < h.min {
			h.min = o.Value
		}
		if o.Value > h.max {
			h.max = o.Value
		}
	}
	h.counts = make([]float64, h.bins)
	width := h.binWidth()
	var totalWeight float64
	for _, o := range h.outcomes {
		totalWeight += o.Weight
		if width == 0 {
			h.counts[0] += o.Weight
			continue
		}
		pos := (o.Value - h.min) / width
		switch h.order {
		case 1:
			idx := clampInt(int(math.Floor(pos+0.5)), 0, h.bins-1)
			h.counts[idx] += o.Weight
		default:
			lowIdx := clampInt(int(math.Floor(pos)), 0, h.bins-1)
			highIdx := clampInt(lowIdx+1, 0, h.bins-1)
			frac := pos - math.Floor(pos)
			h.counts[lowIdx] += o.Weight * (1 - frac)
			h.counts[highIdx] += o.Weight * frac
		}
	}
	if h.pdf && totalWeight > 0 && width > 0 {
		for i := range h.counts {
			h.counts[i] /= totalWeight * width
		}
	}
	return nil
}

func (h *Histogram) binWidth() float64 {
	if h.max <= h.min {
		return 0
	}
	return (h.max - h.min) / float64(h.bins)
}

// Counts returns the bin weights (or densities, if constructed with
// pdf=true) computed in End.
func (h *Histogram) Counts() []float64 { return h.counts }

// Edges returns the bins+1 bin boundaries, from h.min to h.max.
func (h *Histogram) Edges() []float64 {
	edges := make([]float64, h.bins+1)
	width := h.binWidth()
	for i := range edges {
		edges[i] = h.min + width*float64(i)
	}
	return edges
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
