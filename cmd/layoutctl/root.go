package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var socketFlag string
	var configFlag string
	var jsonFlag bool

	ctx := newCommandContext(&socketFlag, &configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "layoutctl",
		Short:         "Inspect and edit item layout on a mixing canvas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Talk to a property server on this socket instead of the local database")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit JSON output")

	rootCmd.AddCommand(newItemCommand(ctx))
	rootCmd.AddCommand(newPositionCommand(ctx))
	rootCmd.AddCommand(newRotateCommand(ctx))
	rootCmd.AddCommand(newRotateAxisCommand(ctx))
	rootCmd.AddCommand(newCanvasRotateCommand(ctx))
	rootCmd.AddCommand(newCropCommand(ctx))
	rootCmd.AddCommand(newCanvasCommand(ctx))
	rootCmd.AddCommand(newFlagsCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
