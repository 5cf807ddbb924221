package main

import "quip/cmd"

func main() {
	cmd.Execute()
}
