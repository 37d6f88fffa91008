package wizard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/topocheck/internal/request"
	"github.com/imamik/topocheck/internal/stack"
	testutil "github.com/imamik/topocheck/internal/testing"
	"github.com/imamik/topocheck/internal/topology"
	"github.com/imamik/topocheck/internal/validation"
)

func TestRunWizard_NoStacks(t *testing.T) {
	t.Parallel()

	_, err := RunWizard(context.Background(), nil)

	assert.ErrorIs(t, err, errNoStacks)
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"simple", "two-node", nil},
		{"dots and underscores", "hdp_2.6-bp", nil},
		{"empty", "", errNameRequired},
		{"leading hyphen", "-bp", errNameInvalid},
		{"space", "two node", errNameInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, validateName(tt.input), tt.want)
		})
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"NAMENODE", "DATANODE"}, parseList(" NAMENODE, ,DATANODE ,"))
	assert.Nil(t, parseList("  "))
}

func TestOptions(t *testing.T) {
	t.Parallel()
	def := testutil.HDPStack()

	stackOpts := StacksToOptions([]*topology.StackDefinition{def})
	require.Len(t, stackOpts, 1)
	assert.Equal(t, "HDP-2.6", stackOpts[0].Value)

	typeOpts := ConfigTypeOptions(def)
	require.Len(t, typeOpts, len(def.Configuration().AllConfigTypes()))
	labels := map[string]string{}
	for _, o := range typeOpts {
		labels[o.Value] = o.Key
	}
	assert.Equal(t, "core-site (HDFS)", labels["core-site"])
	assert.Equal(t, "cluster-env", labels["cluster-env"], "stack-level types have no owner")
}

func TestFindStack(t *testing.T) {
	t.Parallel()
	def := testutil.HDPStack()

	assert.Same(t, def, findStack([]*topology.StackDefinition{def}, testutil.HDPStackRef))
}

func sampleResult() *WizardResult {
	return &WizardResult{
		BlueprintName:        "two-node",
		Stack:                testutil.HDPStackRef,
		BlueprintConfigTypes: []string{"core-site", "hdfs-site"},
		ClusterConfigTypes:   []string{"yarn-site"},
		HostGroup:            "master",
		Components:           []string{"NAMENODE"},
	}
}

func TestBuildRequest(t *testing.T) {
	t.Parallel()

	req := BuildRequest(sampleResult())

	require.NoError(t, req.Validate())
	assert.Equal(t, "two-node", req.Blueprint.Name)
	assert.Len(t, req.Blueprint.Configurations, 2)
	require.Len(t, req.Configurations, 1)
	assert.Contains(t, req.Configurations[0], "yarn-site")
	require.Len(t, req.Blueprint.HostGroups, 1)
	assert.Equal(t, []string{"NAMENODE"}, req.Blueprint.HostGroups[0].Components)
}

func TestWriteRequest_ProducesValidRequest(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "two-node.yaml")

	require.NoError(t, WriteRequest(BuildRequest(sampleResult()), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# topocheck topology request")
	assert.Contains(t, string(content), "# Stack: HDP-2.6")

	// The scaffold only uses types the stack defines, so it validates.
	req, err := request.Load(path)
	require.NoError(t, err)
	topo, err := request.NewResolver(stack.NewMemoryRepository(testutil.HDPStack())).Resolve(testutil.TestContext(t), req)
	require.NoError(t, err)
	assert.NoError(t, validation.NewStackConfigTypeValidator().Validate(topo))
}

// Tests below replace confirmOverwrite and must not run in parallel.

func TestWriteRequest_OverwriteDeclined(t *testing.T) {
	original := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = original })
	confirmOverwrite = func(string) (bool, error) { return false, nil }

	path := testutil.WriteFile(t, t.TempDir(), "req.yaml", "keep me")

	err := WriteRequest(BuildRequest(sampleResult()), path)

	require.ErrorIs(t, err, ErrAborted)
	content, _ := os.ReadFile(path)
	assert.Equal(t, "keep me", string(content))
}

func TestWriteRequest_OverwriteConfirmed(t *testing.T) {
	original := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = original })
	confirmOverwrite = func(string) (bool, error) { return true, nil }

	path := testutil.WriteFile(t, t.TempDir(), "req.yaml", "replace me")

	require.NoError(t, WriteRequest(BuildRequest(sampleResult()), path))
	content, _ := os.ReadFile(path)
	assert.Contains(t, string(content), "blueprint:")
}

func TestWriteRequest_ConfirmError(t *testing.T) {
	original := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = original })
	confirmOverwrite = func(string) (bool, error) { return false, errors.New("no tty") }

	path := testutil.WriteFile(t, t.TempDir(), "req.yaml", "x")

	err := WriteRequest(BuildRequest(sampleResult()), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to confirm overwrite")
}
