package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animac/pkg/compiler"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"animac"}, args...))
	return out.String(), err
}

func TestCompileAndDisasm(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "intro.anima")
	if err := os.WriteFile(script, []byte("[alice] \"Hello\" @wave(left) ;"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "compile", script)
	if err != nil {
		t.Fatalf("compile failed: %v\n%s", err, out)
	}
	mod := filepath.Join(dir, "intro.dvm")
	blob, err := os.ReadFile(mod)
	if err != nil {
		t.Fatalf("module not written: %v", err)
	}
	if binary.LittleEndian.Uint64(blob) != 80 {
		t.Errorf("unexpected header size word % x", blob[:8])
	}

	out, err = run(t, "disasm", "--format", "yaml", mod)
	if err != nil {
		t.Fatalf("disasm failed: %v", err)
	}
	for _, want := range []string{"op: ACTOR", "op: LINE", "op: ACTION", "op: USER_INPUT", "- Hello"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "disasm", mod)
	if err != nil {
		t.Fatalf("disasm failed: %v", err)
	}
	if !strings.Contains(out, `("left")`) {
		t.Errorf("table missing action params:\n%s", out)
	}
}

func TestCompileBigEndianWithConfig(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "a.anima")
	cfg := filepath.Join(dir, "animac.toml")
	mod := filepath.Join(dir, "out.bin")
	os.WriteFile(script, []byte(`"Hi"`), 0o644)
	os.WriteFile(cfg, []byte("[Module]\nByteOrder = \"big\"\nFlags = 2\n"), 0o644)

	if out, err := run(t, "compile", "--config", cfg, script, mod); err != nil {
		t.Fatalf("compile failed: %v\n%s", err, out)
	}
	blob, err := os.ReadFile(mod)
	if err != nil {
		t.Fatal(err)
	}
	if binary.BigEndian.Uint64(blob) != 80 || binary.BigEndian.Uint64(blob[24:]) != 2 {
		t.Errorf("header not big-endian with flags 2: % x", blob[:32])
	}

	// Little-endian decoding of a big-endian module fails the size checks.
	if _, err := run(t, "disasm", mod); err == nil {
		t.Error("expected little-endian disasm to fail")
	}
	if out, err := run(t, "disasm", "--byte-order", "big", mod); err != nil {
		t.Errorf("big-endian disasm failed: %v\n%s", err, out)
	}
}

func TestCompileError(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.anima")
	os.WriteFile(script, []byte("\"ok\"\n$go 1x"), 0o644)

	_, err := run(t, "compile", script)
	if err == nil {
		t.Fatal("expected a compile error")
	}
	if !strings.Contains(err.Error(), "syntax error at 2:5") || !strings.Contains(err.Error(), "^") {
		t.Errorf("unexpected error:\n%v", err)
	}
	if _, statErr := os.Stat(filepath.Join(filepath.Dir(script), "bad.dvm")); !os.IsNotExist(statErr) {
		t.Error("module written despite the error")
	}
}

func TestDumpConfig(t *testing.T) {
	out, err := run(t, "dumpconfig", "--legacy-data-size")
	if err != nil {
		t.Fatalf("dumpconfig failed: %v", err)
	}
	if !strings.Contains(out, "[Module]") || !strings.Contains(out, "LegacyDataSize = true") {
		t.Errorf("unexpected dump:\n%s", out)
	}
}

func TestIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`"done"`, false},
		{`"open`, true},
		{`"esc \" still open`, true},
		{`@move(left,`, true},
		{`[alice, bob]`, false},
		{`/* open`, true},
		{`/* closed */ ;`, false},
		{`// (not a group`, false},
		{`) stray`, false},
	}
	for _, tc := range tests {
		if got := incomplete(tc.src); got != tc.want {
			t.Errorf("incomplete(%q) = %v; want %v", tc.src, got, tc.want)
		}
	}
}

func TestEvalSnippet(t *testing.T) {
	out, err := evalSnippet(`"Hi" .`, compiler.DefaultOptions())
	if err != nil {
		t.Fatalf("evalSnippet failed: %v", err)
	}
	if !strings.Contains(out, "LINE") || !strings.Contains(out, "SYNC") {
		t.Errorf("unexpected listing:\n%s", out)
	}
	out, err = evalSnippet("\"Hi\"\n\n.", compiler.DefaultOptions())
	if err != nil {
		t.Fatalf("evalSnippet failed: %v", err)
	}
	if !strings.Contains(out, "| 3    | SYNC |") {
		t.Errorf("listing missing the source line of SYNC:\n%s", out)
	}
	if _, err := evalSnippet(`// nothing`, compiler.DefaultOptions()); err == nil {
		t.Error("expected an empty program error")
	}
}

func TestHistoryPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	got, err := historyPath()
	if err != nil || got != filepath.Join(dir, historyFile) {
		t.Errorf("historyPath() = %q, %v; want %q", got, err, filepath.Join(dir, historyFile))
	}

	t.Setenv("HOME", "")
	if got, err := historyPath(); err == nil {
		t.Errorf("historyPath() = %q with no home directory; want an error", got)
	}
}
