package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/imamik/topocheck/internal/topology"
)

// HDPStackRef is the ref of the HDPStack fixture.
var HDPStackRef = topology.Ref{Name: "HDP", Version: "2.6"}

// HDPStack returns a small but representative stack definition.
func HDPStack() *topology.StackDefinition {
	return topology.NewStackDefinition(
		HDPStackRef,
		[]string{"cluster-env"},
		[]topology.Service{
			{Name: "HDFS", ConfigTypes: []string{"core-site", "hdfs-site", "hadoop-env"}},
			{Name: "YARN", ConfigTypes: []string{"yarn-site", "yarn-env"}},
			{Name: "ZOOKEEPER", ConfigTypes: []string{"zoo.cfg", "zookeeper-env"}},
		},
	)
}

// HDPStackYAML is the HDPStack fixture as a stack definition file.
const HDPStackYAML = `name: HDP
version: "2.6"
configTypes: [cluster-env]
services:
  - name: HDFS
    configTypes: [core-site, hdfs-site, hadoop-env]
  - name: YARN
    configTypes: [yarn-site, yarn-env]
  - name: ZOOKEEPER
    configTypes: [zoo.cfg, zookeeper-env]
`

// ValidRequestYAML is a topology request that passes validation against HDPStack.
const ValidRequestYAML = `blueprint:
  name: two-node
  stack:
    name: HDP
    version: "2.6"
  configurations:
    - core-site:
        properties:
          fs.defaultFS: hdfs://master:8020
  hostGroups:
    - name: master
      cardinality: "1"
      components: [NAMENODE, RESOURCEMANAGER]
configurations:
  - yarn-site:
      properties:
        yarn.acl.enable: "true"
`

// InvalidRequestYAML is a topology request with two unknown config types.
const InvalidRequestYAML = `blueprint:
  name: two-node
  stack:
    name: HDP
    version: "2.6"
configurations:
  - core-site:
      properties:
        fs.defaultFS: hdfs://master:8020
  - invalid-site-1:
      properties: {}
  - invalid-default:
      properties: {}
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// StackDir creates a temp directory holding the HDPStack fixture file.
func StackDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, HDPStackRef.String()+".yaml", HDPStackYAML)
	return dir
}
