package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"layoutkit/internal/ipc"
	"layoutkit/internal/propstore"
)

func newItemCommand(ctx *commandContext) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Create, list, inspect, and remove layout items",
	}
	itemCmd.AddCommand(newItemNewCommand(ctx))
	itemCmd.AddCommand(newItemListCommand(ctx))
	itemCmd.AddCommand(newItemRemoveCommand(ctx))
	itemCmd.AddCommand(newItemShowCommand(ctx))
	return itemCmd
}

func newItemNewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "new [name]",
		Short: "Create an item with a full-canvas position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.remoteSocket() != "" {
				return fmt.Errorf("item new works on the local database only")
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return ctx.withStore(cmd.Context(), true, func(store *propstore.SQLite) error {
				item, err := store.CreateItem(cmd.Context(), name)
				if err != nil {
					return err
				}
				return ctx.emit(cmd, item, item.ID)
			})
		},
	}
}

func newItemListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []ipc.ItemInfo
			if ctx.remoteSocket() != "" {
				if err := ctx.withClient(func(client *ipc.Client) error {
					var err error
					items, err = client.Items(cmd.Context())
					return err
				}); err != nil {
					return err
				}
			} else {
				if err := ctx.withStore(cmd.Context(), false, func(store *propstore.SQLite) error {
					var err error
					items, err = ipc.StoreBackend{DB: store}.Items(cmd.Context())
					return err
				}); err != nil {
					return err
				}
			}

			if ctx.jsonOutput() {
				if items == nil {
					items = []ipc.ItemInfo{}
				}
				return writeJSON(cmd, items)
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No items")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.ID,
					item.Name,
					item.UpdatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				headers:  []string{"ID", "Name", "Updated"},
				sections: [][][]string{rows},
				aligns:   []columnAlignment{alignLeft, alignLeft, alignRight},
				colorize: shouldColorize(out),
			}))
			return nil
		},
	}
}

func newItemRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item and its properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if ctx.remoteSocket() != "" {
				return fmt.Errorf("item rm works on the local database only")
			}
			id := strings.TrimSpace(args[0])
			return ctx.withStore(cmd.Context(), true, func(store *propstore.SQLite) error {
				removed, err := store.DeleteItem(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("item %s: %w", id, propstore.ErrNotFound)
				}
				return ctx.emit(cmd, map[string]any{"id": id, "removed": true}, fmt.Sprintf("Removed item %s", id))
			})
		},
	}
}
