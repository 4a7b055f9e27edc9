package main

import "verse-notes/cmd/cli"

func main() {
	// With no subcommand the root command starts the interactive prompt.
	cli.RunCLI()
}
