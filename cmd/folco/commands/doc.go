// Package commands defines the folco CLI.
//
// Commands
//
//   - customize  Render a profile once and install it on every directory
//   - reset      Remove the custom icon of every directory
//   - schema     Print the JSON Schema of the profile document
//   - colors     List the named folder colours
//
// # Implementation
//
// The root command loads the environment configuration and builds the zap
// logger before any subcommand runs. Batches run through a folco.Customizer
// while a second goroutine drains the progress stream, drawing a progress
// bar when stderr is a terminal and plain lines otherwise.
package commands
