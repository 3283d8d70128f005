package main

import "github.com/lawrnfy/TaskForge/cmd"

func main() {
	cmd.Execute()
}
