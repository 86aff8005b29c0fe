// Package normalize aplica el plegado de mayúsculas/minúsculas de emails y códigos de empresa.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Email devuelve el email sin espacios y en minúsculas.
func Email(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// CompanyCode devuelve el código de empresa sin espacios y en mayúsculas.
// Los códigos se guardan ya normalizados, así la búsqueda es insensible a mayúsculas.
func CompanyCode(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}
