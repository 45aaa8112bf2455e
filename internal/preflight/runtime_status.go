package preflight

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// ServerProbe reports whether a property server answers on a socket.
type ServerProbe struct {
	Socket  string `json:"socket"`
	Exists  bool   `json:"exists"`
	Running bool   `json:"running"`
}

// ProbeServer dials the socket briefly to see whether a server owns it.
func ProbeServer(path string) ServerProbe {
	probe := ServerProbe{Socket: path}
	if _, err := os.Stat(path); err != nil {
		return probe
	}
	probe.Exists = true
	conn, err := net.DialTimeout("unix", path, 250*time.Millisecond)
	if err != nil {
		return probe
	}
	_ = conn.Close()
	probe.Running = true
	return probe
}

// Detail renders a display-friendly summary for status output.
func (p ServerProbe) Detail() string {
	switch {
	case p.Running:
		return fmt.Sprintf("server listening on %s", p.Socket)
	case p.Exists:
		return fmt.Sprintf("stale socket at %s", p.Socket)
	default:
		return "no server running"
	}
}

// CheckSocket verifies that a server can bind path: the parent directory
// must be writable and no live server may already own the socket.
func CheckSocket(name, path string) Result {
	dir := filepath.Dir(path)
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (directory will be created)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: socket directory not writable: %v)", path, err)}
	}
	probe := ProbeServer(path)
	if probe.Running {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: already in use)", path)}
	}
	if probe.Exists {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (stale socket will be replaced)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (available)", path)}
}
