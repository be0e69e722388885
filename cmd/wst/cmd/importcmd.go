package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// importCmd mirrors the original implementation's insert_file/
// insert_file_btree loaders: it reads newline-delimited keys from a file
// and inserts each one, in order, into a fresh cascade.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-insert newline-delimited keys from a file into a fresh cascade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		tree := container.Tree()
		count := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			tree.Insert(line)
			count++
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		fmt.Printf("inserted %d keys\n", count)
		fmt.Println(tree.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
