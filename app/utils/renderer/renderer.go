package renderer

import (
	"html/template"

	"github.com/attarhouse/storefront/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New() *render.Render {
	return render.New(render.Options{
		Directory:  "views",
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"taka": func(amount decimal.Decimal) string {
					return format.Taka(amount)
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
			},
		},
	})
}
