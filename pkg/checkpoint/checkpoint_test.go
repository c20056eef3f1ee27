package checkpoint_test

import (
	"math"
	"testing"

	"github.com/dmitrymomot/probekit/pkg/checkpoint"
	"github.com/dmitrymomot/probekit/pkg/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(window map[string]any) probe.Oracle {
	return probe.Snapshot{Window: window}.Probe()
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       float64
		min      float64
		max      float64
		expected float64
	}{
		{"inside", 45, 44, 48, 45},
		{"at floor", 44, 44, 48, 44},
		{"at ceiling", 48, 44, 48, 48},
		{"above ceiling", 90, 49, 55, 55},
		{"below floor", 30, 44, 48, 44},
		{"unknown report", probe.DefaultVersion, 22, checkpoint.Unbounded, 22},
		{"unbounded", 120, 43, checkpoint.Unbounded, 120},
		{"fractional", 5.1, 5.0, checkpoint.Unbounded, 5.1},
		{"nan", math.NaN(), 7.0, 7.1, 7.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, checkpoint.Clamp(tc.ua, tc.min, tc.max))
		})
	}
}

func TestTable_Bound(t *testing.T) {
	t.Parallel()

	chromium := checkpoint.Chromium(checkpoint.LatestChrome)

	t.Run("first matching probe wins", func(t *testing.T) {
		t.Parallel()
		// a modern environment also passes every older probe
		o := env(map[string]any{
			"Proxy":       map[string]any{"$fn": true},
			"PushManager": map[string]any{},
			"Promise":     map[string]any{},
			"navigator":   map[string]any{"permissions": map[string]any{}},
		})
		assert.Equal(t, float64(55), chromium.Bound(o, 90))
		assert.Equal(t, float64(52), chromium.Bound(o, 52))
		assert.Equal(t, float64(49), chromium.Bound(o, 20))
	})

	t.Run("middle checkpoint", func(t *testing.T) {
		t.Parallel()
		o := env(map[string]any{"PushManager": map[string]any{}})
		assert.Equal(t, float64(48), chromium.Bound(o, 55))
		assert.Equal(t, float64(46), chromium.Bound(o, 46))
	})

	t.Run("no probe matches", func(t *testing.T) {
		t.Parallel()
		table := checkpoint.Table{Name: "t", Points: []checkpoint.Checkpoint{
			{Probe: probe.Global("a"), Min: 10, Max: 20},
			{Probe: probe.Global("b"), Min: 5, Max: 9},
		}}
		assert.Equal(t, float64(5), table.Bound(env(nil), 15))
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, float64(probe.DefaultVersion), checkpoint.Table{}.Bound(env(nil), 15))
	})

	t.Run("floor checkpoint", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, float64(3), chromium.Bound(env(nil), 3))
		assert.Equal(t, float64(0), chromium.Bound(env(nil), probe.DefaultVersion))
	})
}

func TestTable_Match(t *testing.T) {
	t.Parallel()

	o := env(map[string]any{"navigator": map[string]any{"sendBeacon": map[string]any{"$fn": true}}})
	cp, ok := checkpoint.Chromium(checkpoint.LatestChrome).Match(o)
	require.True(t, ok)
	assert.Equal(t, float64(39), cp.Min)
	assert.Equal(t, float64(42), cp.Max)
	assert.Equal(t, "navigator.sendBeacon", cp.Probe.String())

	_, ok = checkpoint.Table{}.Match(o)
	assert.False(t, ok)
}

func TestTable_BoundIsMonotonic(t *testing.T) {
	t.Parallel()

	environments := []map[string]any{
		nil,
		{"Proxy": map[string]any{}},
		{"PushManager": map[string]any{}},
		{"navigator": map[string]any{"permissions": map[string]any{}}},
		{"CSS": map[string]any{"supports": map[string]any{"$fn": true}}},
		{"document": map[string]any{"pointerLockElement": 0}},
		{"FileReader": map[string]any{}},
	}

	for _, table := range allTables() {
		for _, w := range environments {
			o := env(w)
			cp, matched := table.Match(o)
			prev := math.Inf(-1)
			for ua := -2.0; ua <= 130; ua += 0.5 {
				got := table.Bound(o, ua)
				assert.GreaterOrEqual(t, got, prev, "%s is not monotonic at %v", table.Name, ua)
				if matched {
					assert.GreaterOrEqual(t, got, cp.Min, table.Name)
					assert.LessOrEqual(t, got, cp.Max, table.Name)
				}
				prev = got
			}
		}
	}
}

func TestTables_Validate(t *testing.T) {
	t.Parallel()

	for _, table := range allTables() {
		t.Run(table.Name, func(t *testing.T) {
			t.Parallel()
			require.NoError(t, table.Validate())
			require.NotEmpty(t, table.Points)
			last := table.Points[len(table.Points)-1]
			assert.Equal(t, "always", last.Probe.String(), "tables end with a floor entry")
		})
	}

	unordered := checkpoint.Table{Name: "bad", Points: []checkpoint.Checkpoint{
		{Probe: probe.Global("a"), Min: 1, Max: 2},
		{Probe: probe.Global("b"), Min: 3, Max: 4},
	}}
	require.ErrorIs(t, unordered.Validate(), checkpoint.ErrUnordered)

	inverted := checkpoint.Table{Name: "bad", Points: []checkpoint.Checkpoint{
		{Probe: probe.Global("a"), Min: 5, Max: 2},
	}}
	require.ErrorIs(t, inverted.Validate(), checkpoint.ErrInvalidInterval)
}

func TestCeilingBelowFloor(t *testing.T) {
	t.Parallel()

	table := checkpoint.Chromium(10)
	require.NoError(t, table.Validate())
	o := env(map[string]any{"Proxy": map[string]any{}})
	assert.Equal(t, float64(49), table.Bound(o, 90))
}

func TestTridentEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version  float64
		expected float64
	}{
		{14, 7},
		{11, 7},
		{10, 6},
		{9, 5},
		{8, 4},
		{7, 3},
		{6, 3},
		{10.5, probe.DefaultVersion},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, checkpoint.TridentEngine(tc.version), "version %v", tc.version)
	}
}

func allTables() []checkpoint.Table {
	return []checkpoint.Table{
		checkpoint.Chromium(checkpoint.LatestChrome),
		checkpoint.Gecko(checkpoint.LatestFirefox),
		checkpoint.Trident(checkpoint.LatestEdge),
		checkpoint.Safari(),
		checkpoint.Android(),
		checkpoint.Kindle(),
	}
}
