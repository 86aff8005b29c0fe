package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/staffhub-api/internal/bootstrap"
	"github.com/jhoicas/staffhub-api/pkg/config"
	"github.com/jhoicas/staffhub-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "staffctl",
	Short: "Herramientas de operación de StaffHub",
	Long: `staffctl aplica migraciones, carga la empresa de demo y purga sesiones expiradas.
Lee la misma configuración que el servidor (variables de entorno o .env).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.App.LogLevel
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Nivel de log (env: LOG_LEVEL)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withContainer abre las dependencias, ejecuta fn y las cierra.
func withContainer(ctx context.Context, fn func(*bootstrap.Container) error) error {
	c, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
