package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title Vet Clinic API
// @version 1.0
// @description Agenda de citas veterinarias: clientes, mascotas, staff, tipos de servicio y citas.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:          "vet-clinic",
		Short:        "Vet clinic appointments API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}
