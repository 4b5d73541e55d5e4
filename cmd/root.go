package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "curiocloud",
	Short: "Conversational lesson planning backend",
	Long:  "CurioCloud — backend service that interviews teachers and turns their answers into structured lesson plans.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("addr", "", "Listen address (overrides CURIO_SERVER_ADDR)")
	rootCmd.PersistentFlags().String("db", "", "Database DSN (overrides CURIO_DATABASE_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
