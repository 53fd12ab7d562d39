package internal

import (
	"fmt"

	"github.com/ocrbind/tessgen/internal/locate"
	"github.com/spf13/cobra"
)

const toolVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tool version and the bundled engine version pin",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tessgen %s\n", toolVersion)
		fmt.Printf("bundled %s: %s\n", locate.LibName, locate.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
