package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print a fresh cascade's structure (useful after --config changes tier geometry)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}
		fmt.Println(container.Tree().String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
