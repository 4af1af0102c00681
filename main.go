package main

import "github.com/gnames/instcat/cmd"

func main() {
	cmd.Execute()
}
