package main

import "revscope/cmd"

func main() {
	cmd.Execute()
}
