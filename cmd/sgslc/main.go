// Command sgslc compiles shading DSL source to GLSL.
//
// Usage:
//
//	sgslc [options] <input.sgsl>
//
// Examples:
//
//	sgslc material.sgsl                     # Compile fragment shader to stdout
//	sgslc -stage vertex material.sgsl       # Compile for the vertex stage
//	sgslc -o material.frag material.sgsl    # Compile to file
//	sgslc -config material.toml mat.sgsl    # Declare uniforms via config
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pterm/pterm"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/sgsl"
)

var (
	stage      = flag.String("stage", "fragment", "shader stage (vertex|fragment|compute)")
	output     = flag.String("o", "", "output file (default: stdout)")
	validate   = flag.Bool("validate", true, "run the graph validator before codegen")
	configPath = flag.String("config", "", "TOML config with uniform declarations")
	version    = flag.Bool("version", false, "print version")
)

const sgslcVersion = "0.1.0-dev"

var (
	successStyle = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnStyle    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorStyle   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

// config mirrors the TOML project file. Uniform types use GLSL type names;
// context entries rename the ambient uniforms (empty leaves the default).
type config struct {
	Shader struct {
		Stage   string `toml:"stage"`
		Version string `toml:"version"`
	} `toml:"shader"`
	Uniforms map[string]string `toml:"uniforms"`
	Context  struct {
		Time             string `toml:"time"`
		Resolution       string `toml:"resolution"`
		ModelMatrix      string `toml:"model_matrix"`
		ViewMatrix       string `toml:"view_matrix"`
		ProjectionMatrix string `toml:"projection_matrix"`
		CameraPosition   string `toml:"camera_position"`
	} `toml:"context"`
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("sgslc version %s\n", sgslcVersion)
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
		printError("File Error", err)
		os.Exit(1)
	}

	opts := shadergraph.DefaultOptions()
	opts.Validate = *validate

	if *configPath != "" {
		if err := applyConfig(*configPath, &opts); err != nil {
			printError("Config Error", err)
			os.Exit(1)
		}
	}

	// An explicit -stage flag wins over the config file.
	if flagPassed("stage") || *configPath == "" {
		st, err := parseStage(*stage)
		if err != nil {
			printError("Usage Error", err)
			os.Exit(1)
		}
		opts.Stage = st
	}

	shader, err := shadergraph.CompileSource(string(source), opts)
	if shader != nil {
		printDiagnostics(shader.Diagnostics)
	}
	if err != nil {
		var srcErr *sgsl.SourceError
		if errors.As(err, &srcErr) {
			errorStyle.Print(" " + srcErr.Code.String() + " ")
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, srcErr.FormatWithContext())
		} else {
			printError("Compile Error", err)
		}
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(shader.Source), 0644); err != nil {
			printError("File Error", err)
			os.Exit(1)
		}
		successStyle.Print(" OK ")
		fmt.Printf(" compiled %s to %s (%d bytes)\n", inputPath, *output, len(shader.Source))
	} else {
		fmt.Print(shader.Source)
	}
}

// applyConfig loads the TOML project file and folds it into the options.
func applyConfig(path string, opts *shadergraph.CompileOptions) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return err
	}
	var cfg config
	if err := tree.Unmarshal(&cfg); err != nil {
		return err
	}

	if cfg.Shader.Stage != "" {
		st, err := parseStage(cfg.Shader.Stage)
		if err != nil {
			return err
		}
		opts.Stage = st
	}
	if cfg.Shader.Version != "" {
		v, err := parseVersion(cfg.Shader.Version)
		if err != nil {
			return err
		}
		opts.LangVersion = v
	}

	if len(cfg.Uniforms) > 0 {
		opts.Symbols = make(map[string]graph.Type, len(cfg.Uniforms))
		for name, typeName := range cfg.Uniforms {
			typ, ok := graph.TypeByName(typeName)
			if !ok {
				return fmt.Errorf("uniform %q: unknown type %q", name, typeName)
			}
			opts.Symbols[name] = typ
		}
	}

	if cfg.Context.Time != "" {
		opts.Context.Time = cfg.Context.Time
	}
	if cfg.Context.Resolution != "" {
		opts.Context.Resolution = cfg.Context.Resolution
	}
	if cfg.Context.ModelMatrix != "" {
		opts.Context.ModelMatrix = cfg.Context.ModelMatrix
	}
	if cfg.Context.ViewMatrix != "" {
		opts.Context.ViewMatrix = cfg.Context.ViewMatrix
	}
	if cfg.Context.ProjectionMatrix != "" {
		opts.Context.ProjectionMatrix = cfg.Context.ProjectionMatrix
	}
	if cfg.Context.CameraPosition != "" {
		opts.Context.CameraPosition = cfg.Context.CameraPosition
	}
	return nil
}

func flagPassed(name string) bool {
	passed := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	return passed
}

func parseStage(name string) (glsl.Stage, error) {
	switch name {
	case "vertex":
		return glsl.StageVertex, nil
	case "fragment":
		return glsl.StageFragment, nil
	case "compute":
		return glsl.StageCompute, nil
	default:
		return 0, fmt.Errorf("unknown stage %q (want vertex, fragment, or compute)", name)
	}
}

func parseVersion(name string) (glsl.Version, error) {
	switch name {
	case "330":
		return glsl.Version330, nil
	case "410":
		return glsl.Version410, nil
	case "450":
		return glsl.Version450, nil
	case "460":
		return glsl.Version460, nil
	case "es300", "300es":
		return glsl.VersionES300, nil
	case "es310", "310es":
		return glsl.VersionES310, nil
	default:
		return glsl.Version{}, fmt.Errorf("unknown GLSL version %q", name)
	}
}

func printDiagnostics(diags []graph.Diagnostic) {
	for _, d := range diags {
		if d.Severity == graph.SeverityError {
			errorStyle.Print(" " + d.Code.String() + " ")
		} else {
			warnStyle.Print(" " + d.Code.String() + " ")
		}
		fmt.Fprintln(os.Stderr, " "+d.String())
	}
}

func printError(tag string, err error) {
	errorStyle.Print(" " + tag + " ")
	fmt.Fprintln(os.Stderr, " "+err.Error())
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: sgslc [options] <input.sgsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  sgslc material.sgsl                  Compile to stdout\n")
	fmt.Fprintf(os.Stderr, "  sgslc -stage vertex material.sgsl    Compile for the vertex stage\n")
	fmt.Fprintf(os.Stderr, "  sgslc -o out.frag material.sgsl      Compile to file\n")
	fmt.Fprintf(os.Stderr, "  sgslc -config material.toml in.sgsl  Declare uniforms via config\n")
}
