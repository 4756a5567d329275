package main

import "github.com/quantpair/statarb-tui/cmd"

func main() {
	cmd.Execute()
}
