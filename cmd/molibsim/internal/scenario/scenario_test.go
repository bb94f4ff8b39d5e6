package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/molibsim/cmd/molibsim/internal/scenario"
	"github.com/meenmo/molibsim/engine/clock"
	"github.com/meenmo/molibsim/engine/rng"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeScenario(t, "kind: time\nfixes: [0, 180, 365]\n")
	cfg, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Samples)
	assert.Equal(t, float64(365), cfg.YearFractionRatio)
	assert.Equal(t, []int64{0, 180, 365}, cfg.Fixes)
}

func TestLoadRejectsEmptyFixSchedule(t *testing.T) {
	path := writeScenario(t, "kind: time\nfixes: []\n")
	_, err := scenario.Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuildDispatchesEveryScenarioKind(t *testing.T) {
	kinds := []string{
		"time", "gaussian", "fixedleg", "flows", "cashaccrual", "hullwhite",
		"creditportfolio", "forwardoption", "derivedsignal",
	}
	for _, kind := range kinds {
		cfg := &scenario.Config{Kind: kind, Params: map[string]float64{}}
		root, lens, err := scenario.Build(cfg)
		require.NoError(t, err, "kind=%s", kind)
		require.NotNil(t, root, "kind=%s", kind)
		require.NotNil(t, lens, "kind=%s", kind)

		d := rng.NewDriver(rng.NewDefaultSource(1))
		require.NoError(t, root.Init(clock.Time(0), clock.Time(3650), d, clock.DefaultConfig()), "kind=%s", kind)
		root.Reset()
		root.Update(clock.Time(365))
		assert.NotPanics(t, func() { lens(root.State()) }, "kind=%s", kind)
	}
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	_, _, err := scenario.Build(&scenario.Config{Kind: "nonsense"})
	require.Error(t, err)
}

func TestNewObserversBuildsOneInstancePerFix(t *testing.T) {
	observers, err := scenario.NewObservers(scenario.ObserverConfig{Type: "statistics"}, nil, 3)
	require.NoError(t, err)
	assert.Len(t, observers, 3)
	assert.NotSame(t, observers[0], observers[1])
}

func TestNewObserverRejectsUnknownType(t *testing.T) {
	_, err := scenario.NewObserver(scenario.ObserverConfig{Type: "nonsense"}, nil)
	require.Error(t, err)
}
