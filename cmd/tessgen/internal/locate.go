package internal

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/ocrbind/tessgen/internal/directive"
	"github.com/ocrbind/tessgen/internal/locate"
	"github.com/spf13/cobra"
)

var (
	locatePlatform string
	locateBundled  bool
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Locate the native engine and print its link directives",
	Long: `Locate runs the platform-appropriate discovery strategy and prints the
resulting link directives and include paths, for build systems that consume
flags instead of generated cgo preambles.`,
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVar(&locatePlatform, "platform", runtime.GOOS, "Target platform (GOOS value)")
	locateCmd.Flags().BoolVar(&locateBundled, "bundled", false, "Use the bundled engine copy instead of system discovery")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	var strategy locate.Strategy
	if locateBundled {
		strategy = locate.Bundled{}
	} else {
		strategy = locate.StrategyFor(locate.FromGOOS(locatePlatform))
	}

	disc, err := locate.Locate(strategy, directive.Printer{W: os.Stdout})
	if err != nil {
		return err
	}

	// pkg-config style summary lines.
	var cflags []string
	for _, dir := range disc.IncludePaths {
		cflags = append(cflags, "-I"+dir)
	}
	var libs []string
	for _, dir := range disc.LinkSearchPaths {
		libs = append(libs, "-L"+dir)
	}
	for _, lib := range disc.LinkLibs {
		libs = append(libs, "-l"+lib)
	}
	fmt.Printf("Cflags: %s\n", strings.Join(cflags, " "))
	fmt.Printf("Libs: %s\n", strings.Join(libs, " "))
	return nil
}
