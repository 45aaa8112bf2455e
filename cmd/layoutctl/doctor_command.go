package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"layoutkit/internal/preflight"
)

type doctorReport struct {
	Checks []preflight.Result    `json:"checks"`
	Server preflight.ServerProbe `json:"server"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, socket, and property database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report := doctorReport{
				Checks: preflight.RunAll(cmd.Context(), cfg),
				Server: preflight.ProbeServer(cfg.SocketPath()),
			}
			var failed []preflight.Result
			for _, r := range report.Checks {
				if kind, _ := checkStatus(r, report.Server); kind == statusError {
					failed = append(failed, r)
				}
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Preflight", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, line := range renderCheckLines(report.Checks, report.Server, colorize) {
					fmt.Fprintln(out, line)
				}
			}

			if len(failed) > 0 {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}
