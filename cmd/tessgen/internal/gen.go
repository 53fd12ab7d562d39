package internal

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/ocrbind/tessgen/internal/locate"
	"github.com/ocrbind/tessgen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	genOut      string
	genPackage  string
	genPlatform string
	genCAPI     string
	genTypes    string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the binding artifacts",
	Long: `Gen resolves the bundled engine copy, generates the C-API and
public-types binding files and writes them to the output directory.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&genOut, "out", "o", "gen", "Output directory for generated bindings")
	genCmd.Flags().StringVar(&genPackage, "package", "", "Package name for generated files")
	genCmd.Flags().StringVar(&genPlatform, "platform", runtime.GOOS, "Target platform (GOOS value)")
	genCmd.Flags().StringVar(&genCAPI, "capi-header", pipeline.DefaultCAPIHeader, "C-API wrapper header")
	genCmd.Flags().StringVar(&genTypes, "types-header", pipeline.DefaultPublicTypesHeader, "Public-types wrapper header")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	out, err := filepath.Abs(genOut)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	err = pipeline.Run(pipeline.Options{
		OutDir:            out,
		Platform:          locate.FromGOOS(genPlatform),
		CAPIHeader:        genCAPI,
		PublicTypesHeader: genTypes,
		Package:           genPackage,
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", filepath.Join(out, pipeline.CAPIFile))
	fmt.Printf("wrote %s\n", filepath.Join(out, pipeline.PublicTypesFile))
	return nil
}
