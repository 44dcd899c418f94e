package main

import "takosu/cmd/cli/command"

func main() {
	command.Execute()
}
