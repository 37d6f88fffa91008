// Package wizard provides an interactive wizard that scaffolds topology
// requests.
//
// It uses charmbracelet/huh forms to pick a stack, the config types the
// blueprint carries and the ones the cluster overrides. RunWizard collects
// the answers, BuildRequest turns them into a request.Request and
// WriteRequest saves it as YAML.
package wizard
