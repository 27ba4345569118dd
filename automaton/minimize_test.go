package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimizeMergesIndistinguishableStates(t *testing.T) {
	t.Parallel()
	// Two accepting sinks with identical (empty) behavior collapse into one
	// class.
	g := NewGraph()
	for _, id := range []string{"start", "sink1", "sink2"} {
		s := NewState(id)
		s.Accepting = id != "start"
		g.Add(s)
	}
	g.AddTransition("start", "a", "sink1")
	g.AddTransition("start", "b", "sink2")

	res, err := Minimize(g)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Metrics.OriginalCount)
	assert.Equal(t, 2, res.Metrics.MinimizedCount)
	assert.Equal(t, res.Classes["sink1"], res.Classes["sink2"])
	assert.NotEqual(t, res.Classes["start"], res.Classes["sink1"])
}

func TestMinimizeSplitsByBehavior(t *testing.T) {
	t.Parallel()
	// s1 and s2 are both non-accepting but one step from them differs, so
	// refinement must separate them.
	g := NewGraph()
	for _, id := range []string{"s0", "s1", "s2", "acc"} {
		s := NewState(id)
		s.Accepting = id == "acc"
		g.Add(s)
	}
	g.AddTransition("s0", "x", "s1")
	g.AddTransition("s1", "x", "acc")
	g.AddTransition("s2", "x", "s2")

	res, err := Minimize(g)
	require.NoError(t, err)
	assert.NotEqual(t, res.Classes["s1"], res.Classes["s2"])
}

func TestMinimizeIdempotent(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		s := NewState(id)
		s.Accepting = id == "d"
		g.Add(s)
	}
	g.AddTransition("a", "x", "b")
	g.AddTransition("b", "x", "d")
	g.AddTransition("c", "x", "d")

	first, err := Minimize(g)
	require.NoError(t, err)
	second, err := Minimize(g)
	require.NoError(t, err)

	assert.Equal(t, first.Classes, second.Classes)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestMinimizeSoundness(t *testing.T) {
	t.Parallel()
	// States in one class must agree on acceptance and map to one class
	// under every symbol.
	g := NewGraph()
	for _, id := range []string{"p", "q", "r", "acc1", "acc2"} {
		s := NewState(id)
		s.Accepting = id == "acc1" || id == "acc2"
		g.Add(s)
	}
	g.AddTransition("p", "x", "acc1")
	g.AddTransition("q", "x", "acc2")
	g.AddTransition("r", "x", "p")

	res, err := Minimize(g)
	require.NoError(t, err)

	for _, block := range res.Partition {
		for _, id := range block {
			assert.Equal(t, g.Accepting(block[0]), g.Accepting(id))
			for _, sym := range g.Alphabet() {
				t0, ok0 := g.Transition(block[0], sym)
				t1, ok1 := g.Transition(id, sym)
				assert.Equal(t, ok0, ok1)
				if ok0 {
					assert.Equal(t, res.Classes[t0], res.Classes[t1])
				}
			}
		}
	}
	// p and q both step to an accepting sink, so they share a class
	assert.Equal(t, res.Classes["p"], res.Classes["q"])
}

func TestMinimizeEmptyMachine(t *testing.T) {
	t.Parallel()
	res, err := Minimize(NewGraph())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Metrics.OriginalCount)
	assert.Empty(t, res.Partition)
}

func TestMinimizeDanglingTransition(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	g.Add(NewState("only"))
	g.AddTransition("only", "x", "ghost")

	_, err := Minimize(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangling transition")
}

func TestMinimizeGraphStampsClasses(t *testing.T) {
	t.Parallel()
	g := NewGraph()
	for _, id := range []string{"a", "b"} {
		s := NewState(id)
		s.Accepting = id == "b"
		g.Add(s)
	}
	g.AddTransition("a", "x", "b")

	res, err := MinimizeGraph(g)
	require.NoError(t, err)
	assert.Equal(t, res.Classes["a"], g.State("a").Class)
	assert.Equal(t, res.Classes["b"], g.State("b").Class)
	assert.NotEqual(t, UnassignedClass, g.State("a").Class)
}

func TestMetricsRatio(t *testing.T) {
	t.Parallel()
	m := newMetrics(4, 2)
	assert.Equal(t, 0.5, m.Ratio)
	assert.Equal(t, 0.0, newMetrics(0, 0).Ratio)
}
