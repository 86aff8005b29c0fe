package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/staffhub-api/internal/bootstrap"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Gestión de sesiones",
}

var sessionsSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Eliminar sesiones expiradas una vez",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd.Context(), func(c *bootstrap.Container) error {
			n, err := c.Sessions.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			log.Info().Int64("deleted", n).Msg("sesiones expiradas eliminadas")
			return nil
		})
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsSweepCmd)
}
