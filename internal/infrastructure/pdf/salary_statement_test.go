package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffhub-api/internal/domain/entity"
	"github.com/jhoicas/staffhub-api/internal/domain/rbac"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "$0.00",
		"15":      "$15.00",
		"1234.5":  "$1,234.50",
		"1000000": "$1,000,000.00",
		"-22.505": "-$22.51",
		"999.999": "$1,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

func TestRenderSalaryStatement_GeneraPDF(t *testing.T) {
	company := &entity.Company{Name: "ACME", Code: "ACME"}
	user := &entity.User{
		Name: "Ana", Email: "ana@acme.com", Role: rbac.RoleStaff,
		HourlyRate: entity.DefaultHourlyRate, HolidayRate: entity.DefaultHolidayRate,
		AccumulatedSalary: decimal.NewFromInt(300),
	}
	payments := []*entity.SalaryPayment{
		{Period: "2026-09", Amount: decimal.NewFromInt(1200), PaidAt: time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)},
	}

	out, err := NewStatementRenderer().RenderSalaryStatement(company, user, payments, time.Now())
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderSalaryStatement_SinPagos(t *testing.T) {
	out, err := NewStatementRenderer().RenderSalaryStatement(
		&entity.Company{Name: "ACME", Code: "ACME"},
		&entity.User{Name: "Ana", Role: rbac.RoleStaff},
		nil, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
