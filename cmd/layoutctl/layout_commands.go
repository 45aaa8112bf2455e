package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"layoutkit/internal/layout"
	"layoutkit/internal/propstore"
)

func parseNumber(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected a number", name, raw)
	}
	return v, nil
}

// numericArgs keeps negative values such as "-90" from being read as flags.
func numericArgs(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newPositionCommand(ctx *commandContext) *cobra.Command {
	positionCmd := &cobra.Command{
		Use:   "position",
		Short: "Read or write an item's normalized position",
	}
	positionCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print the position as left,top,right,bottom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				pos, err := engine.Position(cmd.Context())
				if err != nil {
					return err
				}
				return ctx.emit(cmd, pos, layout.FormatRect(pos))
			})
		},
	})
	positionCmd.AddCommand(numericArgs(&cobra.Command{
		Use:   "set <id> <left> <top> <right> <bottom>",
		Short: "Write the position as given",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			var values [4]float64
			for i, name := range []string{"left", "top", "right", "bottom"} {
				v, err := parseNumber(name, args[i+1])
				if err != nil {
					return err
				}
				values[i] = v
			}
			pos := layout.NormalizedRect{Left: values[0], Top: values[1], Right: values[2], Bottom: values[3]}
			return ctx.withEngine(cmd.Context(), args[0], true, func(engine *layout.Engine) error {
				if err := engine.SetPosition(cmd.Context(), pos); err != nil {
					return err
				}
				return ctx.emit(cmd, pos, layout.FormatRect(pos))
			})
		},
	}))
	return positionCmd
}

func newRotateCommand(ctx *commandContext) *cobra.Command {
	rotateCmd := &cobra.Command{
		Use:   "rotate",
		Short: "Read or write the combined canvas and item rotation",
	}
	rotateCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print the rotation in [-180,180]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				value, err := engine.EnhancedRotate(cmd.Context())
				if err != nil {
					return err
				}
				bucket := layout.BucketFor(value)
				return ctx.emit(cmd, map[string]any{
					"rotate":        value,
					"canvas_rotate": bucket.CanvasRotate,
					"orientation":   bucket.Orientation,
				}, layout.FormatDegrees(value))
			})
		},
	})
	rotateCmd.AddCommand(numericArgs(&cobra.Command{
		Use:   "set <id> <degrees>",
		Short: "Rotate the item, re-centring it when it turns between landscape and portrait",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseNumber("rotation", args[1])
			if err != nil {
				return err
			}
			return ctx.withEngine(cmd.Context(), args[0], true, func(engine *layout.Engine) error {
				if err := engine.SetEnhancedRotate(cmd.Context(), value); err != nil {
					return err
				}
				bucket := layout.BucketFor(value)
				return ctx.emit(cmd, bucket, fmt.Sprintf("canvas %d, z %s (%s)",
					int(bucket.CanvasRotate), layout.FormatDegrees(bucket.ZRotate), bucket.Orientation))
			})
		},
	}))
	return rotateCmd
}

func axisAccessors(engine *layout.Engine, axis string) (
	get func(*cobra.Command) (float64, error),
	set func(*cobra.Command, float64) error,
	err error,
) {
	switch strings.ToLower(strings.TrimSpace(axis)) {
	case "x":
		return func(c *cobra.Command) (float64, error) { return engine.RotateX(c.Context()) },
			func(c *cobra.Command, v float64) error { return engine.SetRotateX(c.Context(), v) }, nil
	case "y":
		return func(c *cobra.Command) (float64, error) { return engine.RotateY(c.Context()) },
			func(c *cobra.Command, v float64) error { return engine.SetRotateY(c.Context(), v) }, nil
	case "z":
		return func(c *cobra.Command) (float64, error) { return engine.RotateZ(c.Context()) },
			func(c *cobra.Command, v float64) error { return engine.SetRotateZ(c.Context(), v) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown axis %q (expected x, y, or z)", axis)
	}
}

func newRotateAxisCommand(ctx *commandContext) *cobra.Command {
	axisCmd := &cobra.Command{
		Use:   "rotate-axis",
		Short: "Read or write a single axis rotation",
	}
	axisCmd.AddCommand(&cobra.Command{
		Use:   "get <id> <x|y|z>",
		Short: "Print one axis rotation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				get, _, err := axisAccessors(engine, args[1])
				if err != nil {
					return err
				}
				value, err := get(cmd)
				if err != nil {
					return err
				}
				return ctx.emit(cmd, map[string]any{"axis": args[1], "rotate": value}, layout.FormatDegrees(value))
			})
		},
	})
	axisCmd.AddCommand(numericArgs(&cobra.Command{
		Use:   "set <id> <x|y|z> <degrees>",
		Short: "Write one axis rotation in [-360,360]",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseNumber("rotation", args[2])
			if err != nil {
				return err
			}
			return ctx.withEngine(cmd.Context(), args[0], true, func(engine *layout.Engine) error {
				_, set, err := axisAccessors(engine, args[1])
				if err != nil {
					return err
				}
				if err := set(cmd, value); err != nil {
					return err
				}
				return ctx.emit(cmd, map[string]any{"axis": args[1], "rotate": value}, layout.FormatDegrees(value))
			})
		},
	}))
	return axisCmd
}

func newCanvasRotateCommand(ctx *commandContext) *cobra.Command {
	canvasRotateCmd := &cobra.Command{
		Use:   "canvas-rotate",
		Short: "Read or write the raw canvas rotation",
	}
	canvasRotateCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print the canvas rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				rot, err := engine.CanvasRotate(cmd.Context())
				if err != nil {
					return err
				}
				return ctx.emit(cmd, map[string]any{"canvas_rotate": rot}, strconv.Itoa(int(rot)))
			})
		},
	})
	canvasRotateCmd.AddCommand(&cobra.Command{
		Use:   "set <id> <0|90|180|270>",
		Short: "Write the canvas rotation without touching position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil {
				return fmt.Errorf("invalid canvas rotation %q: expected an integer", args[1])
			}
			return ctx.withEngine(cmd.Context(), args[0], true, func(engine *layout.Engine) error {
				if err := engine.SetCanvasRotate(cmd.Context(), value); err != nil {
					return err
				}
				return ctx.emit(cmd, map[string]any{"canvas_rotate": value}, strconv.Itoa(value))
			})
		},
	})
	return canvasRotateCmd
}

func newCropCommand(ctx *commandContext) *cobra.Command {
	cropCmd := &cobra.Command{
		Use:   "crop",
		Short: "Read or write an item's crop fractions",
	}
	cropCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print the crop as left,top,right,bottom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				crop, err := engine.Cropping(cmd.Context())
				if err != nil {
					return err
				}
				return ctx.emit(cmd, crop, layout.FormatCrop(crop))
			})
		},
	})

	var enhanced bool
	var left, top, right, bottom float64
	setCmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Write crop fractions; --enhanced keeps the visible region in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := layout.CropValues{}
			for name, v := range map[string]float64{"left": left, "top": top, "right": right, "bottom": bottom} {
				if cmd.Flags().Changed(name) {
					values[name] = v
				}
			}
			return ctx.withEngine(cmd.Context(), args[0], true, func(engine *layout.Engine) error {
				apply := engine.SetCropping
				if enhanced {
					apply = engine.SetCroppingEnhanced
				}
				if err := apply(cmd.Context(), values); err != nil {
					return err
				}
				crop, err := engine.Cropping(cmd.Context())
				if err != nil {
					return err
				}
				pos, err := engine.Position(cmd.Context())
				if err != nil {
					return err
				}
				return ctx.emit(cmd, map[string]any{"crop": crop, "position": pos},
					fmt.Sprintf("crop %s position %s", layout.FormatCrop(crop), layout.FormatRect(pos)))
			})
		},
	}
	setCmd.Flags().Float64Var(&left, "left", 0, "Fraction cropped from the left side")
	setCmd.Flags().Float64Var(&top, "top", 0, "Fraction cropped from the top side")
	setCmd.Flags().Float64Var(&right, "right", 0, "Fraction cropped from the right side")
	setCmd.Flags().Float64Var(&bottom, "bottom", 0, "Fraction cropped from the bottom side")
	setCmd.Flags().BoolVar(&enhanced, "enhanced", false, "Move the position so the uncropped remainder stays put")
	cropCmd.AddCommand(setCmd)
	return cropCmd
}

func newCanvasCommand(ctx *commandContext) *cobra.Command {
	canvasCmd := &cobra.Command{
		Use:   "canvas",
		Short: "Read or write the mixing canvas resolution",
	}
	canvasCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the canvas resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), false, func(store *propstore.SQLite) error {
				raw, err := store.AppProperty(cmd.Context(), layout.KeyResolution)
				if err != nil {
					return err
				}
				res, err := layout.ParseResolution(raw)
				if err != nil {
					return fmt.Errorf("get %s: %w", layout.KeyResolution, err)
				}
				return ctx.emit(cmd, res, layout.FormatResolution(res))
			})
		},
	})
	canvasCmd.AddCommand(&cobra.Command{
		Use:   "set <width> <height>",
		Short: "Write the canvas resolution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := layout.ParseResolution(strings.TrimSpace(args[0]) + "," + strings.TrimSpace(args[1]))
			if err != nil {
				return err
			}
			return ctx.withStore(cmd.Context(), true, func(store *propstore.SQLite) error {
				if err := store.SetAppProperty(cmd.Context(), layout.KeyResolution, layout.FormatResolution(res)); err != nil {
					return err
				}
				return ctx.emit(cmd, res, layout.FormatResolution(res))
			})
		},
	})
	return canvasCmd
}

type itemFlags struct {
	KeepAspectRatio bool `json:"keep_ar"`
	PositionLocked  bool `json:"lock_move"`
	EnhancedResize  bool `json:"enhanced_resize"`
}

func newFlagsCommand(ctx *commandContext) *cobra.Command {
	flagsCmd := &cobra.Command{
		Use:   "flags",
		Short: "Read or toggle keep-ar, lock-move, and enhanced-resize",
	}
	flagsCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print every item flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEngine(cmd.Context(), args[0], false, func(engine *layout.Engine) error {
				var flags itemFlags
				var err error
				if flags.KeepAspectRatio, err = engine.KeepAspectRatio(cmd.Context()); err != nil {
					return err
				}
				if flags.PositionLocked, err = engine.PositionLocked(cmd.Context()); err != nil {
					return err
				}
				if flags.EnhancedResize, err = engine.EnhancedResizeEnabled(cmd.Context()); err != nil {
					return err
				}
				plain := fmt.Sprintf("keep-ar=%s lock-move=%s enhanced-resize=%s",
					yesNo(flags.KeepAspectRatio), yesNo(flags.PositionLocked), yesNo(flags.EnhancedResize))
				return ctx.emit(cmd, flags, plain)
			})
		},
	})
	flagsCmd.AddCommand(&cobra.Command{
		Use:   "set <id> <keep-ar|lock-move|enhanced-resize> <true|false>",
		Short: "Toggle one item flag",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(strings.TrimSpace(args[2]))
			if err != nil {
				return fmt.Errorf("invalid flag value %q: expected true or false", args[2])
			}
			return ctx.withEngine(cmd.Context(), args[0], true, func(engine *layout.Engine) error {
				var set func(*cobra.Command) error
				switch strings.ToLower(strings.TrimSpace(args[1])) {
				case "keep-ar":
					set = func(c *cobra.Command) error { return engine.SetKeepAspectRatio(c.Context(), value) }
				case "lock-move":
					set = func(c *cobra.Command) error { return engine.SetPositionLocked(c.Context(), value) }
				case "enhanced-resize":
					set = func(c *cobra.Command) error { return engine.SetEnhancedResizeEnabled(c.Context(), value) }
				default:
					return fmt.Errorf("unknown flag %q (expected keep-ar, lock-move, or enhanced-resize)", args[1])
				}
				if err := set(cmd); err != nil {
					return err
				}
				return ctx.emit(cmd, map[string]any{"flag": args[1], "value": value}, fmt.Sprintf("%s=%s", args[1], yesNo(value)))
			})
		},
	})
	return flagsCmd
}
