package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.huff")
	restored := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(src, []byte("aaabbc"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr strings.Builder
	if code := run([]string{"compress", src, packed}, &stdout, &stderr); code != exitOK {
		t.Fatalf("compress: exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "[INFO] compressed") {
		t.Errorf("missing info line: %q", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"-q", "-dump", "decompress", packed, restored}, &stdout, &stderr); code != exitOK {
		t.Fatalf("decompress: exit %d: %s", code, stderr.String())
	}
	if strings.Contains(stderr.String(), "[INFO]") {
		t.Errorf("-q did not silence info lines: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Decoder{") {
		t.Errorf("-dump did not dump the table: %q", stderr.String())
	}

	out, err := os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "aaabbc" {
		t.Errorf("expected %q, got %q", "aaabbc", out)
	}
}

func TestRun_InspectJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.huff")
	if err := os.WriteFile(src, []byte("aaabbc"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr strings.Builder
	if code := run([]string{"-q", "compress", src, packed}, &stdout, &stderr); code != exitOK {
		t.Fatalf("compress: exit %d: %s", code, stderr.String())
	}
	if code := run([]string{"-json", "inspect", packed}, &stdout, &stderr); code != exitOK {
		t.Fatalf("inspect: exit %d: %s", code, stderr.String())
	}

	var info struct {
		Symbols int `json:"symbols"`
		Padding int `json:"padding"`
		Table   []struct {
			Symbol int    `json:"symbol"`
			Code   string `json:"code"`
		} `json:"table"`
	}
	if err := json.Unmarshal([]byte(stdout.String()), &info); err != nil {
		t.Fatalf("bad JSON %q: %v", stdout.String(), err)
	}
	if info.Symbols != 3 || info.Padding != 7 || len(info.Table) != 3 {
		t.Errorf("wrong info: %+v", info)
	}
	if len(info.Table) == 3 && (info.Table[0].Symbol != 'a' || info.Table[0].Code != "0") {
		t.Errorf("wrong first entry: %+v", info.Table[0])
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage")
	if err := os.WriteFile(garbage, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	type testRow struct {
		name   string
		args   []string
		code   int
		stderr string
	}

	testData := [...]testRow{
		{name: "no-command", args: nil, code: exitUsage, stderr: "missing command"},
		{name: "unknown-command", args: []string{"zip", "a", "b"}, code: exitUsage, stderr: "unknown command"},
		{name: "wrong-arity", args: []string{"compress", "a"}, code: exitUsage, stderr: "expected 2 arguments"},
		{name: "empty-input", args: []string{"compress", empty, filepath.Join(dir, "x")}, code: exitFail, stderr: "(invalid input)"},
		{name: "missing-input", args: []string{"compress", filepath.Join(dir, "nope"), filepath.Join(dir, "x")}, code: exitFail, stderr: "(i/o error)"},
		{name: "corrupt", args: []string{"decompress", garbage, filepath.Join(dir, "x")}, code: exitFail, stderr: "(corrupt container)"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var stdout, stderr strings.Builder
			code := run(row.args, &stdout, &stderr)
			if code != row.code {
				t.Errorf("expected exit %d, got %d", row.code, code)
			}
			if !strings.Contains(stderr.String(), row.stderr) {
				t.Errorf("expected stderr to contain %q, got %q", row.stderr, stderr.String())
			}
		})
	}
}
