// Command raytrace renders a textual scene description to a PPM image.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpetrov/raytrace/internal/ppmimage"
	"github.com/mpetrov/raytrace/internal/render"
	"github.com/mpetrov/raytrace/internal/sceneparser"
)

var outPath string

var rootCmd = &cobra.Command{
	Use:   "raytrace <scene-file>",
	Short: "raytrace renders a scene description into a PPM image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0], outPath)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "output PPM path (default: input basename with .ppm extension)")
}

func runRender(scenePath, out string) error {
	sc, err := sceneparser.ParseFile(scenePath)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	img, err := render.Render(sc)
	if err != nil {
		return fmt.Errorf("rendering scene: %w", err)
	}

	if out == "" {
		out = defaultOutputPath(scenePath)
	}
	written, err := writeImage(img, out)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", written)
	return nil
}

// defaultOutputPath replaces the scene file's extension with .ppm, or
// appends .ppm if it has none.
func defaultOutputPath(scenePath string) string {
	base := scenePath
	if idx := strings.LastIndexByte(base, '.'); idx > strings.LastIndexAny(base, "/\\") {
		base = base[:idx]
	}
	return base + ".ppm"
}

// writeImage writes img to path, returning the path actually written.
// If the write fails, it tries once more against a fixed fallback name
// in the working directory before giving up, so a bad output path
// doesn't discard a finished render.
func writeImage(img *ppmimage.Image, path string) (string, error) {
	if err := writeImageTo(img, path); err != nil {
		const fallback = "temp.ppm"
		if fallbackErr := writeImageTo(img, fallback); fallbackErr != nil {
			return "", fmt.Errorf("writing %q failed (%v), fallback %q also failed: %w", path, err, fallback, fallbackErr)
		}
		fmt.Fprintf(os.Stderr, "warning: could not write %q (%v); wrote %q instead\n", path, err, fallback)
		return fallback, nil
	}
	return path, nil
}

func writeImageTo(img *ppmimage.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ppmimage.Write(f, img)
}

func main() {
	// No arguments, or -h/--help, print usage and exit non-zero.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(1)
	}
	helpShown := false
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		helpShown = true
	})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if helpShown {
		os.Exit(1)
	}
}
