package preflight

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"layoutkit/internal/config"
	"layoutkit/internal/propstore"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckStore_Missing(t *testing.T) {
	result := CheckStore(context.Background(), "db", filepath.Join(t.TempDir(), "layout.db"))
	if !result.Passed {
		t.Fatalf("missing database should pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckStore_ReportsCanvas(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.SocketPath = filepath.Join(cfg.Paths.DataDir, "layoutkit.sock")
	store, err := propstore.Open(&cfg)
	if err != nil {
		t.Fatalf("propstore.Open: %v", err)
	}
	store.Close()

	result := CheckStore(context.Background(), "db", cfg.StorePath())
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "canvas 1920,1080") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.db")
	if err := os.WriteFile(path, []byte("not a database at all, just text padding it out"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckStore(context.Background(), "db", path)
	if result.Passed {
		t.Fatal("expected failure for corrupt database")
	}
}

func TestCheckSocket(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layoutkit.sock")

	if result := CheckSocket("socket", path); !result.Passed {
		t.Fatalf("free socket should pass, got: %s", result.Detail)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping socket test: %v", err)
		}
		t.Fatalf("listen: %v", err)
	}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	result := CheckSocket("socket", path)
	listener.Close()
	if result.Passed {
		t.Fatal("socket owned by a live server should fail")
	}
	if ProbeServer(path).Running {
		t.Fatal("closed listener should not be running")
	}
}

func TestCheckSocket_MissingDirectory(t *testing.T) {
	result := CheckSocket("socket", filepath.Join(t.TempDir(), "run", "layoutkit.sock"))
	if !result.Passed {
		t.Fatalf("missing directory should pass, got: %s", result.Detail)
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.SocketPath = filepath.Join(cfg.Paths.DataDir, "layoutkit.sock")

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures %+v", failed)
	}
	if RunAll(context.Background(), nil) != nil {
		t.Fatal("nil config should produce no results")
	}
}
