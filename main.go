package main

import "github.com/rollmark/rollmark/cmd"

func main() {
	cmd.Execute()
}
