// Package golden_test provides golden snapshot tests for the compiler
// pipeline: for each .scad input under testdata/in/, it compiles through
// to a linearized CSG chain and compares the dump against a golden file
// under testdata/golden/chain/.
//
// To regenerate golden files after an intentional change to the pipeline:
//
//	UPDATE_GOLDEN=1 go test ./golden/...
package golden_test

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/gopenscad/scad"
)

type scadFile struct {
	name   string
	source string
}

func TestGoldenChainDumps(t *testing.T) {
	models := loadInputs(t, "testdata/in")
	if len(models) == 0 {
		t.Fatal("no input models found in testdata/in/")
	}

	for i := range models {
		m := &models[i]
		t.Run(m.name, func(t *testing.T) {
			dump := compileChainDump(t, m.source)
			compareGolden(t, filepath.Join("testdata", "golden", "chain", m.name+".chain"), dump)
		})
	}
}

func loadInputs(t *testing.T, dir string) []scadFile {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read input directory %q: %v", dir, err)
	}

	var models []scadFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".scad") {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(dir, entry.Name()))
		if readErr != nil {
			t.Fatalf("read model %q: %v", entry.Name(), readErr)
		}
		name := strings.TrimSuffix(entry.Name(), ".scad")
		models = append(models, scadFile{name: name, source: string(data)})
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].name < models[j].name
	})
	return models
}

func compileChainDump(t *testing.T, source string) string {
	t.Helper()

	file, err := scad.Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root := scad.Evaluate(file)
	term := scad.BuildCSGTerm(root)
	norm := scad.Normalize(term)
	chain := scad.Linearize(norm)
	return chain.Dump()
}

func compareGolden(t *testing.T, path, actual string) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDEN") != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			t.Fatalf("create golden dir: %v", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(actual), 0o644); wErr != nil {
			t.Fatalf("write golden file: %v", wErr)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("golden file missing: %s\nRun with UPDATE_GOLDEN=1 to create.\n\nActual output:\n%s", path, truncate(actual, 500))
	}
	if err != nil {
		t.Fatalf("read golden file %s: %v", path, err)
	}

	expectedStr := strings.ReplaceAll(string(expected), "\r\n", "\n")
	actualStr := strings.ReplaceAll(actual, "\r\n", "\n")
	if expectedStr != actualStr {
		t.Errorf("golden mismatch for %s\n--- expected ---\n%s\n--- actual ---\n%s", path, expectedStr, actualStr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
