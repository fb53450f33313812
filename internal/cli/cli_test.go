package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	sferrors "github.com/matzehuels/shannonfano/pkg/errors"
	"github.com/matzehuels/shannonfano/pkg/fano"
	"github.com/matzehuels/shannonfano/pkg/pipeline"
)

// execute runs the root command with args in an isolated XDG environment.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code sferrors.Code
	}{
		{"codes without symbols", []string{"codes"}, ""},
		{"single symbol", []string{"codes", "A=1"}, sferrors.ErrCodeTooFewSymbols},
		{"bad sum", []string{"codes", "A=0.5", "B=0.2"}, sferrors.ErrCodeProbabilitySumMismatch},
		{"bad pair", []string{"codes", "A"}, sferrors.ErrCodeInvalidInput},
		{"duplicate", []string{"codes", "A=0.5", "A=0.5"}, sferrors.ErrCodeDuplicateOrEmptyName},
		{"places too large", []string{"codes", "A=0.5", "B=0.5", "--places", "16"}, sferrors.ErrCodeInvalidInput},
		{"empty text", []string{"text", "   "}, sferrors.ErrCodeEmptyInput},
		{"bad characters", []string{"text", "hello!"}, sferrors.ErrCodeInvalidCharacters},
		{"encode without table", []string{"encode", "abc"}, ""},
		{"tree bad extension", []string{"tree", "A=0.5", "B=0.5", "-o", "tree.gif"}, ""},
		{"tree text and symbols", []string{"tree", "A=0.5", "--text", "ab"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !sferrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCodesCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"decimal", []string{"codes", "A=0.5", "B=0.25", "C=0.25"}},
		{"fractions", []string{"codes", "A=1/2", "B=1/4", "C=1/4", "--steps"}},
		{"json", []string{"codes", "A=0.4", "B=0.35", "C=0.25", "--json"}},
		{"sorted", []string{"codes", "B=0.25", "A=0.5", "C=0.25", "--sort", "--no-cache"}},
		{"lenient parallel", []string{"codes", "A=0.5", "B=0.5", "--lenient", "--parallel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err != nil {
				t.Fatalf("execute error: %v", err)
			}
		})
	}
}

func TestCodesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alphabet.toml")
	content := `symbols = [
  { name = "A", probability = 0.5 },
  { name = "B", probability = 0.5 },
]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "codes.json")
	if err := execute(t, "codes", "-f", path, "-o", out); err != nil {
		t.Fatalf("execute error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var res pipeline.Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]string{"A": "0", "B": "1"}
	if got := fano.Table(res.Codes); !mapsEqual(got, want) {
		t.Errorf("codes = %v, want %v", got, want)
	}
}

func TestTextThenEncode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "codes.json")
	if err := execute(t, "text", "abracadabra", "--encode", "-o", out); err != nil {
		t.Fatalf("text error: %v", err)
	}
	if err := execute(t, "encode", "cadabra", "-f", out, "-q"); err != nil {
		t.Fatalf("encode error: %v", err)
	}
}

func TestTreeCommandDOT(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tree.dot")
	if err := execute(t, "tree", "A=0.5", "B=0.25", "C=0.25", "-o", out); err != nil {
		t.Fatalf("execute error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("output is not DOT:\n%s", dot)
	}
	for _, id := range []string{"n1", "n00", "n01"} {
		if !strings.Contains(dot, id) {
			t.Errorf("DOT missing node %s", id)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	if err := execute(t, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[defaults]\nplaces = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "--config", path, "codes", "A=0.5", "B=0.5"); err == nil {
		t.Error("expected error for invalid config")
	}

	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memory\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "--config", path, "codes", "A=0.5", "B=0.5"); err != nil {
		t.Errorf("execute error: %v", err)
	}
}

func TestLoadSymbols(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alphabet.json")
	if err := os.WriteFile(path, []byte(`{"symbols": [{"name": "A", "probability": 0.5}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		file    string
		args    []string
		want    []string
		wantErr bool
	}{
		{name: "args", args: []string{"A=0.5", "B=0.5"}, want: []string{"A", "B"}},
		{name: "file and args", file: path, args: []string{"B=0.5"}, want: []string{"A", "B"}},
		{name: "nothing", wantErr: true},
		{name: "missing file", file: filepath.Join(dir, "nope.json"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadSymbols(tt.file, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadSymbols() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d symbols, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Name != tt.want[i] {
					t.Errorf("symbol %d = %s, want %s", i, s.Name, tt.want[i])
				}
			}
		})
	}
}

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.txt")
	if err := os.WriteFile(path, []byte("hello world\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		file    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "argument", args: []string{"abc"}, want: "abc"},
		{name: "file", file: path, want: "hello world"},
		{name: "both", file: path, args: []string{"abc"}, wantErr: true},
		{name: "neither", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readText(tt.file, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayOrder(t *testing.T) {
	codes := []fano.Coded{
		{Name: "B", Probability: 0.25, Code: "00"},
		{Name: "A", Probability: 0.5, Code: "1"},
	}

	if got := displayOrder(codes, false); got[0].Name != "B" {
		t.Errorf("unsorted order changed: %v", got)
	}
	got := displayOrder(codes, true)
	if got[0].Name != "A" {
		t.Errorf("sorted first = %s, want A", got[0].Name)
	}
	if codes[0].Name != "B" {
		t.Error("displayOrder modified its input")
	}
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			if err := execute(t, "completion", shell); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
		})
	}
	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
