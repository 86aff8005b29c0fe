package postgres

import (
	"testing"

	"github.com/jhoicas/staffhub-api/internal/domain/policy"
	"github.com/stretchr/testify/assert"
)

func TestScopeCondition(t *testing.T) {
	cond, args := scopeCondition(policy.Scope{Kind: policy.ScopeCompany, CompanyID: "c1"}, "o", 1)
	assert.Equal(t, "o.company_id = $1", cond)
	assert.Equal(t, []any{"c1"}, args)

	cond, args = scopeCondition(policy.Scope{Kind: policy.ScopeMarket, CompanyID: "c1", MarketID: "m1"}, "o", 3)
	assert.Equal(t, "o.company_id = $3 AND o.market_id = $4", cond)
	assert.Equal(t, []any{"c1", "m1"}, args)

	cond, args = scopeCondition(policy.Scope{Kind: policy.ScopeSelf, CompanyID: "c1", UserID: "u1"}, "u", 1)
	assert.Equal(t, "u.company_id = $1 AND u.id = $2", cond)
	assert.Equal(t, []any{"c1", "u1"}, args)
}

func TestMigrationFiles(t *testing.T) {
	files, err := migrationFiles()
	assert.NoError(t, err)
	assert.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}

func TestDSNWithIPv4_SinResolucion(t *testing.T) {
	// IPv4 literal y DSN clave=valor no necesitan DNS.
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db", dsnWithIPv4("postgres://u:p@127.0.0.1:5432/db"))
	assert.Equal(t, "host=db user=app", dsnWithIPv4("host=db user=app"))
}
