package main

import "github.com/Augustwise/fullstack-task-manager/cmd"

func main() {
	cmd.Execute()
}
