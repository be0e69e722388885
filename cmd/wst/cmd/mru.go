package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mruCmd = &cobra.Command{
	Use:   "mru",
	Short: "Print a fresh cascade's recency order, MRU to LRU",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}
		fmt.Println(container.Tree().PrintOrderedMRU())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mruCmd)
}
