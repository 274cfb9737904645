// Package cmd provides the list of commands to check expressions and render protocols
package cmd

import (
	"github.com/relex/gotils/config"
)

func init() {
	config.AddParentCmdWithArgs("", "slog-protocol parses tag selectors and matchers, and renders protocols of tagged messages", &rootCmd, rootCmd.preRun, rootCmd.postRun)
	config.AddCmdWithArgs("select ...", "Parse a tag selector (first argument) and match it against the tags in the rest of arguments", nil, runSelectCommand)
	config.AddCmdWithArgs("check ...", "Parse a matcher (the only argument) and print its normalized form", nil, runCheckCommand)
	config.AddCmdWithArgs("render ...", "Render a protocol document with the configured level limit, filter and output", &renderCmd, renderCmd.run)
}

// Execute parses the command line and runs the specified command
func Execute() {
	// trigger init

	config.Execute()
}
