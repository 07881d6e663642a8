// Package cli implements the firstprinciples command-line interface.
//
// # Commands
//
//   - convert: adjacency list to Mermaid (or DOT) on stdout
//   - render: adjacency list to svg/png/pdf/mermaid/dot files, cached
//   - serve: the editor's HTTP API
//   - concept: explain a graph concept, via the server or locally
//   - doc: manage documents saved on this machine
//   - cache: inspect or clear the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The CLI's
// logger is attached to each command's context in PersistentPreRunE and
// retrieved with loggerFromContext.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli
