package main

import "github.com/go-arrower/records/records/cmd"

func main() {
	cmd.Execute()
}
