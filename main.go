package main

import "github.com/moyu-x/dupsweep/cmd"

func main() {
	cmd.Execute()
}
