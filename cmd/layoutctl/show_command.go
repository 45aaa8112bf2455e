package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"layoutkit/internal/layout"
)

func newItemShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every layout property of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap layout.Snapshot
			if err := ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				var err error
				snap, err = engine.Snapshot(cmd.Context())
				return err
			}); err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, snap)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Item "+strings.TrimSpace(args[0]), colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				headers:  []string{"Property", "Value"},
				sections: snapshotSections(snap),
				aligns:   []columnAlignment{alignLeft, alignRight},
				colorize: colorize,
			}))
			return nil
		},
	}
}

// snapshotSections groups an item's properties into footprint, rotation, and
// flag sections.
func snapshotSections(snap layout.Snapshot) [][][]string {
	title := cases.Title(language.Und)
	footprint := [][]string{
		{"Position", layout.FormatRect(snap.Position)},
		{"Crop", layout.FormatCrop(snap.Crop)},
		{"Canvas", layout.FormatResolution(snap.Resolution)},
	}
	rotation := [][]string{
		{"Rotation", layout.FormatDegrees(snap.EnhancedRotate)},
		{"Orientation", title.String(string(snap.Orientation))},
		{"Canvas rotation", layout.FormatDegrees(float64(snap.CanvasRotate))},
		{"Rotate X", layout.FormatDegrees(snap.RotateX)},
		{"Rotate Y", layout.FormatDegrees(snap.RotateY)},
		{"Rotate Z", layout.FormatDegrees(snap.RotateZ)},
	}
	flags := [][]string{
		{"Keep aspect ratio", yesNo(snap.KeepAspectRatio)},
		{"Position locked", yesNo(snap.PositionLocked)},
		{"Enhanced resize", yesNo(snap.EnhancedResize)},
	}
	return [][][]string{footprint, rotation, flags}
}
