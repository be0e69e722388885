package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <key>",
	Short: "Search a fresh, empty cascade for a key (demonstrates the not-found path)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}
		if container.Tree().Search(args[0]) {
			fmt.Printf("found %q\n", args[0])
		} else {
			fmt.Printf("not found: %q\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
