package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/staffhub-api/internal/application/dto"
	"github.com/jhoicas/staffhub-api/internal/bootstrap"
	"github.com/jhoicas/staffhub-api/internal/domain"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crear la empresa de demo",
	Long: `Crea la empresa ACME con un market, un owner, un manager y un staff.
Todas las cuentas usan la contraseña indicada con --password. Si el código ya existe no hace nada.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		code, _ := cmd.Flags().GetString("code")
		pass, _ := cmd.Flags().GetString("password")
		return withContainer(cmd.Context(), func(c *bootstrap.Container) error {
			return seedDemo(cmd.Context(), c, code, pass)
		})
	},
}

func init() {
	seedCmd.Flags().String("code", "ACME", "Código de la empresa de demo")
	seedCmd.Flags().String("password", "changeme123", "Contraseña de las cuentas de demo")
}

func seedDemo(ctx context.Context, c *bootstrap.Container, code, pass string) error {
	created, err := c.Auth.RegisterCompany(ctx, dto.RegisterCompanyRequest{
		CompanyName: "Acme Markets",
		CompanyCode: code,
		OwnerName:   "Olivia Owner",
		OwnerEmail:  "owner@acme.test",
		Password:    pass,
	})
	if errors.Is(err, domain.ErrCompanyCodeExists) {
		log.Info().Str("code", code).Msg("la empresa de demo ya existe")
		return nil
	}
	if err != nil {
		return fmt.Errorf("registrar empresa: %w", err)
	}

	owner, err := c.Repos.Users.GetByID(ctx, created.User.ID)
	if err != nil {
		return fmt.Errorf("cargar owner: %w", err)
	}
	if owner == nil {
		return fmt.Errorf("cargar owner: %w", domain.ErrNotFound)
	}

	deps := c.RouterDeps()
	market, err := deps.MarketUC.Create(ctx, owner, dto.MarketRequest{Name: "Centro", Address: "Calle Mayor 1"})
	if err != nil {
		return fmt.Errorf("crear market: %w", err)
	}

	// En el modelo simple no existe supervisor: manager y staff existen en ambos.
	for _, u := range []struct {
		email, name string
		role        rbac.Role
	}{
		{"manager@acme.test", "Mario Manager", rbac.RoleManager},
		{"staff@acme.test", "Sara Staff", rbac.RoleStaff},
	} {
		_, err := deps.UserUC.Create(ctx, owner, dto.CreateUserRequest{
			Email:    u.email,
			Password: pass,
			Name:     u.name,
			Role:     string(u.role),
			MarketID: &market.ID,
		})
		if err != nil {
			return fmt.Errorf("crear %s: %w", u.email, err)
		}
	}

	log.Info().
		Str("code", code).
		Str("company_id", owner.CompanyID).
		Str("market_id", market.ID).
		Msg("empresa de demo creada")
	return nil
}
