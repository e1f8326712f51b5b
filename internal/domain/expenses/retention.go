package expenses

import "github.com/shopspring/decimal"

// RetentionItem una imputación con la regla de retención de su tipo de gasto.
type RetentionItem struct {
	Amount           decimal.Decimal
	RetentionPercent decimal.Decimal
	RetentionMinimum decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// RetentionTotal total retenido de un pago: suma monto × porcentaje/100 de cada
// imputación cuyo monto alcanza el mínimo del tipo de gasto. El resultado se
// redondea a 2 decimales con redondeo half-up (Round de shopspring redondea la
// mitad alejándose de cero, que para montos positivos es half-up; nunca usar
// redondeo bancario aquí).
func RetentionTotal(items []RetentionItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.RetentionPercent.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if it.Amount.LessThan(it.RetentionMinimum) {
			continue
		}
		total = total.Add(it.Amount.Mul(it.RetentionPercent).Div(oneHundred))
	}
	return total.Round(2)
}
