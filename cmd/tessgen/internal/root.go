package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tessgen",
	Short: "tessgen generates Go bindings for the Tesseract OCR engine",
	Long: `tessgen locates a native Tesseract installation (or the bundled copy
shipped with the project) and generates the cgo binding surface consumed by
the surrounding build.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
