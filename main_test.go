package main

import (
	"encoding/binary"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const runMainEnv = "HPBDL_RUN_MAIN"

// TestMain lets the test binary stand in for the hpbdl command: when
// runMainEnv is set, the arguments after "--" are handed to main.
func TestMain(m *testing.M) {
	if os.Getenv(runMainEnv) == "1" {
		args := []string{"hpbdl"}
		for i, a := range os.Args {
			if a == "--" {
				args = append(args, os.Args[i+1:]...)
				break
			}
		}
		os.Args = args
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// runHpbdl runs main in a child process inside dir and returns its exit code.
func runHpbdl(t *testing.T, dir string, args ...string) int {
	t.Helper()
	cmd := exec.Command(os.Args[0], append([]string{"-test.run=^$", "--"}, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		runMainEnv+"=1",
		"LOG_LEVEL=ERROR",
		"IBDL_OUTPUT_DIR="+filepath.Join(dir, "out"),
	)
	err := cmd.Run()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Failed to run command: %v", err)
	}
	return exitErr.ExitCode()
}

// writeArchive writes a one-package archive: "demo" holding a.txt = "hello".
func writeArchive(t *testing.T, dir, magic string) string {
	t.Helper()
	const pkgStart = 0x949
	buf := make([]byte, pkgStart+0x43d+0x114)
	copy(buf, magic)
	binary.LittleEndian.PutUint64(buf[0x929:], pkgStart)
	binary.LittleEndian.PutUint64(buf[0x931:], 0x10)

	copy(buf[pkgStart:], "ipkg")
	copy(buf[pkgStart+0x220:], "demo")
	rec := buf[pkgStart+0x43d:]
	copy(rec, "a.txt")
	binary.LittleEndian.PutUint64(rec[0x100:], 0x14)
	binary.LittleEndian.PutUint64(rec[0x108:], 5)
	copy(buf[pkgStart+0x14:], "hello")

	path := filepath.Join(dir, "input.ibdl")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("Failed to write archive: %v", err)
	}
	return path
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name  string
		magic string // empty means no archive is written
		args  func(input string) []string
		want  int
	}{
		{name: "no arguments", args: func(string) []string { return nil }, want: 1},
		{name: "too many arguments", magic: "ibdl", args: func(in string) []string { return []string{in, in} }, want: 1},
		{name: "missing input", args: func(string) []string { return []string{"missing.ibdl"} }, want: 1},
		{name: "invalid magic", magic: "ibdX", args: func(in string) []string { return []string{in} }, want: 1},
		{name: "valid archive", magic: "ibdl", args: func(in string) []string { return []string{in} }, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := ""
			if tt.magic != "" {
				input = writeArchive(t, dir, tt.magic)
			}

			if got := runHpbdl(t, dir, tt.args(input)...); got != tt.want {
				t.Fatalf("exit status %d, want %d", got, tt.want)
			}

			content, err := os.ReadFile(filepath.Join(dir, "out", "demo.ipk", "a.txt"))
			if tt.want == 0 {
				if err != nil || string(content) != "hello" {
					t.Fatalf("demo.ipk/a.txt = %q, %v; want %q", content, err, "hello")
				}
			} else if err == nil {
				t.Fatal("output written on failed run")
			}
		})
	}
}
