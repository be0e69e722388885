package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a key from a fresh cascade (always reports not-found)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}
		if container.Tree().Remove(args[0]) {
			fmt.Printf("removed %q\n", args[0])
		} else {
			fmt.Printf("not found: %q\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
