package preflight

import (
	"context"

	"layoutkit/internal/config"
)

// SocketCheckName labels the socket availability result in RunAll.
const SocketCheckName = "Property socket"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckSocket(SocketCheckName, cfg.SocketPath()),
		CheckStore(ctx, "Property database", cfg.StorePath()),
	}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
