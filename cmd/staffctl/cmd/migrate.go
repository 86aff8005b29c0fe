package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jhoicas/staffhub-api/internal/bootstrap"
	"github.com/jhoicas/staffhub-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplicar migraciones pendientes",
	Long:  `Aplica las migraciones SQL embebidas que aún no figuran en schema_migrations, una transacción por archivo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd.Context(), func(c *bootstrap.Container) error {
			if c.Pool == nil {
				return errors.New("migrate requiere STORAGE_DRIVER=postgres")
			}
			applied, err := postgres.Migrate(cmd.Context(), c.Pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				log.Info().Msg("no hay migraciones pendientes")
				return nil
			}
			log.Info().Strs("versions", applied).Msg("migraciones aplicadas")
			return nil
		})
	},
}
