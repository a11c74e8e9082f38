package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.clipx.app/clipx/internal/message"
)

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete all clipboard history",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := request(&message.Message{Type: message.TypeClear}); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		},
	}

	addConfigFlag(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete one history entry by index",
		Long: `Deletes a single entry. Indexes are as printed by "clipx history":
0 is the most recent entry.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index < 0 {
				return fmt.Errorf("index must be a non-negative integer, got %q", args[0])
			}
			if _, err := request(&message.Message{Type: message.TypeDelete, Index: index}); err != nil {
				return err
			}
			fmt.Printf("Deleted entry %d.\n", index)
			return nil
		},
	}

	addConfigFlag(cmd)
	return cmd
}
