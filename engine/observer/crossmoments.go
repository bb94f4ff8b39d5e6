package observer

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/meenmo/molibsim/engine/agent"
)

// CrossMoments watches several agents at once and accumulates their joint
// mean vector and covariance matrix (spec §4.10 "CrossMoments — mean
// vector and covariance matrix across several agents"), letting a caller
// read off correlations between, say, two curve states or two instrument
// legs driven by the same path.
type CrossMoments struct {
	lenses  []Lens
	agents  []agent.Agent
	rows    [][]float64
	weights []float64
}

// NewCrossMoments constructs a CrossMoments observer over the given
// agents, each paired with a lens (nil entries default to DefaultLens).
// Init's root argument is ignored: the agents to watch are fixed at
// construction since there is more than one.
func NewCrossMoments(agents []agent.Agent, lenses []Lens) *CrossMoments {
	resolved := make([]Lens, len(agents))
	for i, l := range lenses {
		resolved[i] = l
	}
	for i, l := range resolved {
		if l == nil {
			resolved[i] = DefaultLens
		}
	}
	return &CrossMoments{agents: agents, lenses: resolved}
}

func (c *CrossMoments) Init(root agent.Agent) error {
	if len(c.agents) == 0 {
		return fmt.Errorf("CrossMoments.Init: %w", agent.ErrNotConfigured)
	}
	return nil
}

func (c *CrossMoments) Observe(weight float64) error {
	row := make([]float64, len(c.agents))
	for i, a := range c.agents {
		row[i] = c.lenses[i](a.State())
	}
	c.rows = append(c.rows, row)
	c.weights = append(c.weights, weight)
	return nil
}

func (c *CrossMoments) End() error { return nil }

// Mean returns the weighted mean of each watched agent's samples, in the
// same order the agents were supplied.
func (c *CrossMoments) Mean() []float64 {
	n := len(c.agents)
	means := make([]float64, n)
	col := make([]float64, len(c.rows))
	for j := 0; j < n; j++ {
		for i, row := range c.rows {
			col[i] = row[j]
		}
		means[j] = stat.Mean(col, c.weights)
	}
	return means
}

// Covariance returns the weighted covariance matrix across the watched
// agents via gonum's CovarianceMatrix, with dimension len(agents).
func (c *CrossMoments) Covariance() *mat.SymDense {
	n := len(c.agents)
	data := make([]float64, len(c.rows)*n)
	for i, row := range c.rows {
		copy(data[i*n:(i+1)*n], row)
	}
	x := mat.NewDense(len(c.rows), n, data)
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, x, c.weights)
	return &cov
}
