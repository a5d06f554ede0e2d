//go:build cli
// +build cli

package main

import (
	_ "brightlaptop.GO/custom"

	"brightlaptop.GO/cmd"
	"brightlaptop.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
