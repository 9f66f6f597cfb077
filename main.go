package main

import "github.com/covergen/covergen/cmd"

func main() {
	cmd.Execute()
}
