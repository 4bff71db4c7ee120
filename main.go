package main

import (
	"browsarr/cmd"
)

func main() {
	cmd.Execute()
}
