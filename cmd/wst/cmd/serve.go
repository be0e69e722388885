package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tehiaohiao/wst/pkg/api"
)

// serveCmd starts the REST API server described in the API docs, keeping
// a single cascade alive for the life of the process.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the wst REST API server, wrapping one long-lived cascade
behind a mutex so HTTP requests can touch it concurrently.

Example:
  wst serve --config wst.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := containerFrom(cmd)
		if err != nil {
			return err
		}
		fmt.Printf("serving cascade with %d tiers\n", container.Tree().NumTrees())
		return api.StartServer(container.Tree(), container.ServerConfig())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
