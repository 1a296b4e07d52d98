package main

import "github.com/chriserin/bolts/cmd"

func main() {
	cmd.Execute()
}
