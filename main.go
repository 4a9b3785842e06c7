package main

import (
	"nuibench/cmd"
)

func main() {
	cmd.Execute()
}
