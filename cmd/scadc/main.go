// Command scadc is the OpenSCAD geometry compiler CLI.
//
// Usage:
//
//	scadc [options] <input.scad>
//
// Examples:
//
//	scadc model.scad                  # Compile to STL on stdout
//	scadc -o model.stl model.scad     # Compile to file
//	scadc -binary -o model.stl model.scad
//	scadc -preview model.scad         # Print the linearized CSG chain instead
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gopenscad/scad"
)

var (
	output      = flag.String("o", "", "output file (default: stdout)")
	binary      = flag.Bool("binary", false, "emit binary STL instead of ASCII")
	preview     = flag.Bool("preview", false, "print the linearized CSG chain instead of rendering STL")
	versionFlag = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("scadc version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	if *preview {
		runPreview(string(source), inputPath)
		return
	}

	opts := scad.DefaultOptions()
	opts.Binary = *binary
	stlBytes, err := scad.CompileToSTL(string(source), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, stlBytes, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully compiled %s to %s (%d bytes)\n", inputPath, *output, len(stlBytes))
		return
	}
	if _, err := os.Stdout.Write(stlBytes); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// runPreview prints the linearized CSG chain dump for wiring into an
// external rasterizer instead of rendering STL; the boundary-rep kernel
// runs only for render() subtrees, which BuildCSGTerm folds into single
// primitives.
func runPreview(source, inputPath string) {
	file, err := scad.Parse(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}
	root := scad.Evaluate(file)
	term := scad.BuildCSGTerm(root)
	norm := scad.Normalize(term)
	chain := scad.Linearize(norm)

	if chain.ExceedsPreviewBudget() {
		fmt.Fprintf(os.Stderr, "Warning: %s exceeds the preview primitive budget; chain dump may be large\n", inputPath)
	}
	fmt.Print(chain.Dump())
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: scadc [options] <input.scad>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  scadc model.scad                  Compile to stdout\n")
	fmt.Fprintf(os.Stderr, "  scadc -o model.stl model.scad     Compile to file\n")
	fmt.Fprintf(os.Stderr, "  scadc -preview model.scad         Print the CSG chain\n")
}
