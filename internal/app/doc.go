// Package app wires application dependencies for the CLI.
//
// It loads Config from defaults, a YAML file and the environment, builds the
// logger, and selects the collection store: a Chroma server when a host is
// configured, the persistent local store otherwise. The result is exposed via
// App for commands to use.
package app
