// Package main is the entry point for the Brandlens CLI.
// It signs the viewer in and runs the navigation shell against the web app's API.
package main

import (
	"brandlens/cli/cmd"
)

func main() {
	cmd.Execute()
}
