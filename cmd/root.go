package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brightlaptop",
	Short: "Bright Laptop catalog backend CLI",
	Run: func(cmd *cobra.Command, args []string) {
		// ASCII banner on bare invocation (random font each run)
		fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
		fig := figure.NewFigure("Bright Laptop", fonts[rand.Intn(len(fonts))], true)
		fig.Print()
		fmt.Println()
		_ = cmd.Help()
	},
}

// Execute runs the CLI. Custom commands registered through Register are
// attached before dispatch.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
