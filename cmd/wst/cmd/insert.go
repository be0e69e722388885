package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <key>",
	Short: "Insert a key into a fresh cascade and print its final shape",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}
		container.Tree().Insert(args[0])
		fmt.Println(container.Tree().String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
