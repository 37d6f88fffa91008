package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/topocheck/internal/config"
	"github.com/imamik/topocheck/internal/config/wizard"
	"github.com/imamik/topocheck/internal/request"
	tt "github.com/imamik/topocheck/internal/testing"
	"github.com/imamik/topocheck/internal/topology"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := fileExists
	origRunWizard := runWizard
	origWriteRequest := writeRequest
	origSaveConfig := saveConfig

	t.Cleanup(func() {
		fileExists = origFileExists
		runWizard = origRunWizard
		writeRequest = origWriteRequest
		saveConfig = origSaveConfig
	})
}

func wizardResult() *wizard.WizardResult {
	return &wizard.WizardResult{
		BlueprintName:        "two-node",
		Stack:                tt.HDPStackRef,
		BlueprintConfigTypes: []string{"core-site"},
		ClusterConfigTypes:   []string{"yarn-site"},
		HostGroup:            "master",
		Components:           []string{"NAMENODE"},
	}
}

func TestInit_WritesValidRequest(t *testing.T) {
	saveAndRestoreInitFactories(t)

	var offered []*topology.StackDefinition
	runWizard = func(_ context.Context, stacks []*topology.StackDefinition) (*wizard.WizardResult, error) {
		offered = stacks
		return wizardResult(), nil
	}
	saveConfig = func(*config.Config, string) error {
		t.Fatal("config must not be saved when a config file was used")
		return nil
	}

	stackDir := tt.StackDir(t)
	cfgPath := writeConfig(t, stackDir, "")
	outPath := filepath.Join(t.TempDir(), "cluster.yaml")

	var out, errOut bytes.Buffer
	err := Init(context.Background(), cfgPath, nil, outPath, &out, &errOut)
	require.NoError(t, err)

	require.Len(t, offered, 1)
	assert.Equal(t, tt.HDPStackRef, offered[0].Ref())
	assert.Contains(t, out.String(), "Request saved to: "+outPath)

	req, err := request.Load(outPath)
	require.NoError(t, err)
	assert.Equal(t, "two-node", req.Blueprint.Name)
	assert.Equal(t, tt.HDPStackRef, req.Blueprint.Stack)

	// The generated request passes validation as written.
	var vOut, vErr bytes.Buffer
	err = Validate(context.Background(), ValidateOptions{
		ConfigPath: cfgPath,
		Files:      []string{outPath},
		Out:        &vOut,
		Err:        &vErr,
	})
	require.NoError(t, err)
}

func TestInit_DefaultOutputAndStarterConfig(t *testing.T) {
	saveAndRestoreInitFactories(t)
	t.Chdir(t.TempDir())

	runWizard = func(context.Context, []*topology.StackDefinition) (*wizard.WizardResult, error) {
		return wizardResult(), nil
	}
	fileExists = func(string) bool { return false }

	var saved *config.Config
	var savedPath string
	saveConfig = func(cfg *config.Config, path string) error {
		saved, savedPath = cfg, path
		return nil
	}

	stackDir := tt.StackDir(t)
	overrides := map[string]any{"stacks.source": "dir", "stacks.dir": stackDir}

	var out, errOut bytes.Buffer
	err := Init(context.Background(), "", overrides, "", &out, &errOut)
	require.NoError(t, err)

	_, err = os.Stat("two-node.yaml")
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, config.DefaultConfigFilename, savedPath)
	assert.Equal(t, stackDir, saved.Stacks.Dir)
	assert.Contains(t, out.String(), "Configuration saved to: topocheck.yaml")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreInitFactories(t)

	runWizard = func(context.Context, []*topology.StackDefinition) (*wizard.WizardResult, error) {
		return nil, errors.New("user aborted")
	}
	writeRequest = func(*request.Request, string) error {
		t.Fatal("nothing must be written")
		return nil
	}

	var out, errOut bytes.Buffer
	err := Init(context.Background(), writeConfig(t, tt.StackDir(t), ""), nil, "x.yaml", &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveAndRestoreInitFactories(t)

	runWizard = func(context.Context, []*topology.StackDefinition) (*wizard.WizardResult, error) {
		return wizardResult(), nil
	}
	writeRequest = func(*request.Request, string) error {
		return wizard.ErrAborted
	}

	var out, errOut bytes.Buffer
	err := Init(context.Background(), writeConfig(t, tt.StackDir(t), ""), nil, "x.yaml", &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Aborted, nothing written.")
}

func TestInit_NoStacks(t *testing.T) {
	saveAndRestoreInitFactories(t)

	runWizard = func(context.Context, []*topology.StackDefinition) (*wizard.WizardResult, error) {
		t.Fatal("wizard must not run without stacks")
		return nil, nil
	}

	var out, errOut bytes.Buffer
	err := Init(context.Background(), writeConfig(t, t.TempDir(), ""), nil, "x.yaml", &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no stacks available from source "dir"`)
}
