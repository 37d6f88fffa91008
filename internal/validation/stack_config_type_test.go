package validation

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/imamik/topocheck/internal/topology"
)

var stackTypes = []string{"core-site", "yarn-site"}

func TestStackConfigTypeValidator_RejectInvalidType(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, []string{"invalid-site"})

	err := NewStackConfigTypeValidator().Validate(topo)

	require.Error(t, err)
	var tve *TopologyValidationError
	require.ErrorAs(t, err, &tve)
	assert.Equal(t, KindUnknownConfigType, tve.Kind)
	assert.Equal(t, "stack-config-type", tve.Validator)
	assert.Equal(t, []string{"invalid-site"}, tve.Invalid)
}

func TestStackConfigTypeValidator_AllowEmptyConfig(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, []string{})

	err := NewStackConfigTypeValidator().Validate(topo)

	assert.NoError(t, err)
}

func TestStackConfigTypeValidator_RejectMultipleInvalidTypes(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, []string{"invalid-site-1", "invalid-default"})

	err := NewStackConfigTypeValidator().Validate(topo)

	require.Error(t, err)
	assert.True(t, IsUnknownConfigType(err))
	assert.Equal(t, []string{"invalid-default", "invalid-site-1"}, InvalidConfigTypes(err))
	assert.Contains(t, err.Error(), "invalid-site-1")
	assert.Contains(t, err.Error(), "invalid-default")
}

func TestStackConfigTypeValidator_AllowValidTypes(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, stackTypes)

	err := NewStackConfigTypeValidator().Validate(topo)

	assert.NoError(t, err)
}

func TestStackConfigTypeValidator_ReportsOnlyUnknownTypes(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, []string{"yarn-site", "zoo-cfg", "core-site", "Core-Site"})

	err := NewStackConfigTypeValidator().Validate(topo)

	require.Error(t, err)
	assert.Equal(t, []string{"Core-Site", "zoo-cfg"}, InvalidConfigTypes(err), "match is case-sensitive")
}

func TestStackConfigTypeValidator_DuplicatesReportedOnce(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, []string{"bad-site", "bad-site", "core-site"})

	err := NewStackConfigTypeValidator().Validate(topo)

	require.Error(t, err)
	assert.Equal(t, []string{"bad-site"}, InvalidConfigTypes(err))
}

func TestStackConfigTypeValidator_EmptyConfigSkipsStack(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(stackTypes, nil)

	require.NoError(t, NewStackConfigTypeValidator().Validate(topo))
	assert.Equal(t, int32(0), topo.stack.config.calls.Load())
}

func TestStackConfigTypeValidator_EmptyStackRejectsEverything(t *testing.T) {
	t.Parallel()
	topo := newStubTopology(nil, []string{"core-site"})

	err := NewStackConfigTypeValidator().Validate(topo)

	assert.Equal(t, []string{"core-site"}, InvalidConfigTypes(err))
}

func TestStackConfigTypeValidator_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()
	stack := []string{"yarn-site", "core-site"}
	cluster := []string{"zz-site", "core-site", "aa-site"}
	stackCopy := slices.Clone(stack)
	clusterCopy := slices.Clone(cluster)

	err := NewStackConfigTypeValidator().Validate(newStubTopology(stack, cluster))

	require.Error(t, err)
	assert.Equal(t, stackCopy, stack)
	assert.Equal(t, clusterCopy, cluster)
}

func TestStackConfigTypeValidator_WithResolvedTopology(t *testing.T) {
	t.Parallel()
	stack := topology.NewStackDefinition(
		topology.Ref{Name: "HDP", Version: "2.6"},
		[]string{"cluster-env"},
		[]topology.Service{{Name: "HDFS", ConfigTypes: []string{"core-site", "hdfs-site"}}},
	)
	bp := &topology.Blueprint{
		Name:          "bp",
		Configuration: topology.NewConfig(topology.Properties{"hdfs-site": {}, "hbase-site": {}}, nil),
	}
	cluster := topology.NewConfig(topology.Properties{"core-site": {}, "oozie-site": {}}, nil)

	err := NewStackConfigTypeValidator().Validate(topology.New("t", bp, stack, cluster))

	assert.Equal(t, []string{"hbase-site", "oozie-site"}, InvalidConfigTypes(err),
		"types from the blueprint layer are checked too")
}

// TestStackConfigTypeValidator_Properties checks, over random inputs, that the
// validator fails exactly when C - S is non-empty and reports exactly C - S.
func TestStackConfigTypeValidator_Properties(t *testing.T) {
	t.Parallel()
	universe := []string{"core-site", "hdfs-site", "yarn-site", "mapred-site", "hive-site", "cluster-env", "zoo.cfg"}
	rng := rand.New(rand.NewSource(42))
	v := NewStackConfigTypeValidator()

	pick := func() []string {
		var out []string
		for _, name := range universe {
			if rng.Intn(2) == 0 {
				out = append(out, name)
			}
		}
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}

	for i := range 500 {
		s, c := pick(), pick()

		var want []string
		for _, name := range c {
			if !slices.Contains(s, name) {
				want = append(want, name)
			}
		}
		slices.Sort(want)

		err := v.Validate(newStubTopology(s, c))
		if len(want) == 0 {
			require.NoError(t, err, "case %d: S=%v C=%v", i, s, c)
			continue
		}
		require.Error(t, err, "case %d: S=%v C=%v", i, s, c)
		assert.Equal(t, want, InvalidConfigTypes(err), "case %d", i)
	}
}

func TestStackConfigTypeValidator_EqualSetsAlwaysPass(t *testing.T) {
	t.Parallel()
	v := NewStackConfigTypeValidator()
	for _, types := range [][]string{
		nil,
		{"core-site"},
		{"core-site", "hdfs-site", "yarn-site"},
	} {
		shuffled := slices.Clone(types)
		slices.Reverse(shuffled)
		assert.NoError(t, v.Validate(newStubTopology(types, shuffled)))
	}
}

func TestStackConfigTypeValidator_ConcurrentUse(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	v := NewStackConfigTypeValidator()
	var wg sync.WaitGroup
	errs := make([]error, 64)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cluster := []string{"core-site"}
			if i%2 == 1 {
				cluster = append(cluster, fmt.Sprintf("bad-%d", i))
			}
			errs[i] = v.Validate(newStubTopology(stackTypes, cluster))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 0 {
			assert.NoError(t, err)
			continue
		}
		assert.Equal(t, []string{fmt.Sprintf("bad-%d", i)}, InvalidConfigTypes(err))
	}
}

func TestStackConfigTypeValidator_ErrorSurvivesWrapping(t *testing.T) {
	t.Parallel()
	err := NewStackConfigTypeValidator().Validate(newStubTopology(stackTypes, []string{"x-site"}))
	wrapped := fmt.Errorf("creating cluster: %w", err)

	assert.True(t, IsUnknownConfigType(wrapped))
	assert.False(t, IsUnknownConfigType(errors.New("other")))
	assert.Equal(t, []string{"x-site"}, InvalidConfigTypes(wrapped))
}
