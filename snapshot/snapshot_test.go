// Package snapshot_test provides golden snapshot tests for the compiler.
//
// For each DSL input in testdata/in/, the test compiles to GLSL with the
// options registered for that input and compares the output to the golden
// file stored in testdata/golden/glsl/.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/shadergraph"
	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
)

// shaderFile represents an input shader loaded from disk.
type shaderFile struct {
	name   string // base name without extension (e.g., "color_mix")
	source string
}

// inputOptions returns the compile options for a named input. Inputs not
// listed here compile as fragment shaders with no declared symbols.
func inputOptions(name string) shadergraph.CompileOptions {
	opts := shadergraph.DefaultOptions()
	switch name {
	case "pulse":
		opts.Symbols = map[string]graph.Type{"u_time": graph.Float}
	case "glow":
		opts.Symbols = map[string]graph.Type{"u_color": graph.Vec4}
	case "wobble":
		opts.Stage = glsl.StageVertex
		opts.LangVersion = glsl.VersionES300
		opts.Symbols = map[string]graph.Type{"u_time": graph.Float}
	}
	return opts
}

// TestSnapshots is the main golden snapshot test. It loads all DSL inputs,
// compiles each, and compares with golden files.
func TestSnapshots(t *testing.T) {
	shaders := loadInputShaders(t, filepath.Join("testdata", "in"))
	if len(shaders) == 0 {
		t.Fatal("no input shaders found in testdata/in/")
	}

	for i := range shaders {
		shader := &shaders[i]
		t.Run(shader.name, func(t *testing.T) {
			result, err := shadergraph.CompileSource(shader.source, inputOptions(shader.name))
			if err != nil {
				t.Fatalf("compile %q: %v", shader.name, err)
			}
			compareGolden(t, filepath.Join("testdata", "golden", "glsl", shader.name+".glsl"), result.Source)
		})
	}
}

// loadInputShaders reads all .sgsl files from the given directory.
func loadInputShaders(t *testing.T, dir string) []shaderFile {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var shaders []shaderFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sgsl") {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			t.Fatalf("read shader %q: %v", entry.Name(), readErr)
		}
		name := strings.TrimSuffix(entry.Name(), ".sgsl")
		shaders = append(shaders, shaderFile{name: name, source: string(data)})
	}
	return shaders
}

// compareGolden compares generated output with the golden file, rewriting
// the golden file instead when UPDATE_GOLDEN is set.
func compareGolden(t *testing.T, path, got string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create golden directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("write golden file %q: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden file %q: %v (run with UPDATE_GOLDEN=1 to create)", path, err)
	}

	if normalize(string(want)) != normalize(got) {
		t.Errorf("output differs from golden file %q\n--- want ---\n%s\n--- got ---\n%s", path, want, got)
	}
}

func normalize(s string) string {
	return strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
