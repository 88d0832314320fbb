package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestManagePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "othello.pid")

	pf, err := acquirePIDFile(path, true)
	if err != nil {
		t.Fatalf("acquirePIDFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read PID file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != strconv.Itoa(os.Getpid()) {
		t.Fatalf("PID file contains %q", got)
	}

	// Our own process is alive, so a second locked start must refuse
	if _, err := acquirePIDFile(path, true); err == nil {
		t.Fatal("second instance acquired the PID file")
	}

	pf.Release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("PID file not removed: %v", err)
	}
}

func TestStalePIDFileIsReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "othello.pid")
	// PIDs this large are not handed out on Linux
	if err := os.WriteFile(path, []byte("99999999\n"), 0644); err != nil {
		t.Fatal(err)
	}

	pf, err := acquirePIDFile(path, true)
	if err != nil {
		t.Fatalf("stale PID file rejected: %v", err)
	}
	pf.Release()
}

func TestCorruptPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "othello.pid")
	if err := os.WriteFile(path, []byte("not-a-pid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := acquirePIDFile(path, true); err == nil {
		t.Fatal("corrupt PID file accepted")
	}
}
