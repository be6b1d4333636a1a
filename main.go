package main

import "github.com/kamal-hamza/inv-cli/cmd"

func main() {
	cmd.Execute()
}
