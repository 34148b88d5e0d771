package main

import "github.com/morlab/ipldg/cmd"

func main() {
	cmd.Execute()
}
