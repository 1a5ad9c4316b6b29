package vars_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gi8lino/templator/internal/vars"
	_ "github.com/gi8lino/templator/schemas" // ensure JSON schema is loaded
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuild_Precedence(t *testing.T) {
	file := writeTempFile(t, "vars.env", "KEY=file\n")

	varMap, err := vars.Build(vars.Options{
		Environ: []string{"KEY=env"},
		Files:   []string{file},
		Pairs:   []string{"KEY=set"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := varMap["KEY"]; got != "set" {
		t.Errorf("KEY = %q, want %q (explicit pairs beat files beat environment)", got, "set")
	}
}

func TestBuild_FileBeatsEnvironment(t *testing.T) {
	file := writeTempFile(t, "vars.env", "KEY=file\n")

	varMap, err := vars.Build(vars.Options{
		Environ: []string{"KEY=env", "OTHER=kept"},
		Files:   []string{file},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := varMap["KEY"]; got != "file" {
		t.Errorf("KEY = %q, want %q", got, "file")
	}
	if got := varMap["OTHER"]; got != "kept" {
		t.Errorf("OTHER = %q, want %q", got, "kept")
	}
}

func TestBuild_NilEnviron(t *testing.T) {
	varMap, err := vars.Build(vars.Options{Environ: nil, Pairs: []string{"A=1"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(varMap) != 1 || varMap["A"] != "1" {
		t.Errorf("varMap = %v, want only A=1", varMap)
	}
}

func TestBuild_LaterFilesWin(t *testing.T) {
	first := writeTempFile(t, "first.env", "KEY=first\n")
	second := writeTempFile(t, "second.env", "KEY=second\n")

	varMap, err := vars.Build(vars.Options{Files: []string{first, second}})
	if err != nil {
		t.Fatal(err)
	}
	if got := varMap["KEY"]; got != "second" {
		t.Errorf("KEY = %q, want %q", got, "second")
	}
}

func TestBuild_LaterPairsWin(t *testing.T) {
	varMap, err := vars.Build(vars.Options{Pairs: []string{"KEY=a", "KEY=b"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := varMap["KEY"]; got != "b" {
		t.Errorf("KEY = %q, want %q", got, "b")
	}
}

func TestBuild_PairValues(t *testing.T) {
	varMap, err := vars.Build(vars.Options{
		Pairs: []string{"EMPTY=", "EQ=a=b", " SPACED = v "},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := varMap["EMPTY"]; got != "" {
		t.Errorf("EMPTY = %q, want empty value", got)
	}
	if got := varMap["EQ"]; got != "a=b" {
		t.Errorf("EQ = %q, want %q (split on the first '=')", got, "a=b")
	}
	if got := varMap["SPACED"]; got != "v" {
		t.Errorf("SPACED = %q, want %q", got, "v")
	}
}

func TestBuild_MalformedPair(t *testing.T) {
	tests := []struct {
		name string
		pair string
	}{
		{"no_separator", "KEYVALUE"},
		{"empty_key", "=value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vars.Build(vars.Options{Pairs: []string{tt.pair}})
			if err == nil {
				t.Fatalf("Build with pair %q should fail", tt.pair)
			}
			var pairErr *vars.PairError
			if !errors.As(err, &pairErr) {
				t.Fatalf("error %v should be a *PairError", err)
			}
			if pairErr.Arg != tt.pair {
				t.Errorf("PairError.Arg = %q, want %q", pairErr.Arg, tt.pair)
			}
		})
	}
}

func TestBuild_UnreadableFile(t *testing.T) {
	_, err := vars.Build(vars.Options{Files: []string{filepath.Join(t.TempDir(), "missing.env")}})
	if err == nil {
		t.Fatal("Build with a missing input file should fail")
	}
}
