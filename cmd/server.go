package cmd

import (
	"musicalchairs/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Musical Chairs HTTP server",
	Long:  `Start the HTTP server that routes audio metadata into the partition collections and serves the API consumed by the two front ends.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
