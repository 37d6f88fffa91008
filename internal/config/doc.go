// Package config loads the topocheck application configuration.
//
// Values come from, in increasing priority: built-in defaults, the
// topocheck.yaml file (given explicitly or found by walking up from the
// working directory), TOPOCHECK_* environment variables, and command-line
// overrides. Keys are dotted paths (stacks.dir); the matching environment
// variable upper-cases the path and replaces dots with underscores
// (TOPOCHECK_STACKS_DIR).
package config
