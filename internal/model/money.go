package model

import "github.com/shopspring/decimal"

// Line es un par precio/cantidad usado para calcular totales.
type Line struct {
	Price    float64
	Quantity int
}

// SumLines suma price*quantity en decimal.
func SumLines(lines []Line) float64 {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.InexactFloat64()
}

// SameAmount compara dos montos con precisión de centavos.
func SameAmount(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}
