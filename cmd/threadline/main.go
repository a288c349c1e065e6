package main

import (
	"threadline/internal/cmd"
)

func main() {
	cmd.Run()
}
