// Package pdf genera el extracto salarial de un empleado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + código     │  EXTRACTO SALARIAL + fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Nombre / Email / Rol / Tarifas                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Periodo | Fecha de pago | Importe                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total pagado / Saldo acumulado                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/staffhub-api/internal/application/usecase"
	"github.com/jhoicas/staffhub-api/internal/domain/entity"
)

var _ usecase.StatementRenderer = (*StatementRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// StatementRenderer implementa usecase.StatementRenderer usando Maroto v2.
type StatementRenderer struct{}

// NewStatementRenderer construye el renderer.
func NewStatementRenderer() *StatementRenderer { return &StatementRenderer{} }

// RenderSalaryStatement genera el PDF y devuelve sus bytes.
func (g *StatementRenderer) RenderSalaryStatement(
	company *entity.Company,
	user *entity.User,
	payments []*entity.SalaryPayment,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Salary statement", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(paymentRows(payments)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(payments, user.AccumulatedSalary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company *entity.Company, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Code: "+company.Code, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("SALARY STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+generatedAt.UTC().Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func employeeRow(u *entity.User) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("EMPLOYEE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(u.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Role: %s", u.Email, u.Role), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Hourly rate: %s   |   Holiday rate: %s",
				money(u.HourlyRate), money(u.HolidayRate),
			), props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Period", 4, align.Left),
		h("Paid at", 4, align.Left),
		h("Amount", 4, align.Right),
	)
}

func paymentRows(payments []*entity.SalaryPayment) []core.Row {
	if len(payments) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("No payments recorded", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		out = append(out, row.New(7).Add(
			col.New(4).Add(text.New(p.Period, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.PaidAt.UTC().Format("2006-01-02"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(money(p.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalsRow(payments []*entity.SalaryPayment, balance decimal.Decimal) core.Row {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: colorPrimary})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Total paid:"), text.New("Balance:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6,
		})),
		col.New(3).Add(value(money(total)), text.New(money(balance), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 6, Color: colorPrimary,
		})),
	)
}

// money formatea con dos decimales y separador de miles: 1234.5 -> "$1,234.50".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "." + frac
}
