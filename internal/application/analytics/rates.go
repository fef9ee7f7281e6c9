// Package analytics contiene el motor de agregación de datasets de plantilla:
// análisis de un período y acumulado anual a partir de snapshots.
package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SafeRate num / den * 100 redondeado a 2 decimales; 0 si den no es positivo.
func SafeRate(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred).Round(2)
}

// SafeRateInt SafeRate sobre contadores enteros.
func SafeRateInt(num, den int) decimal.Decimal {
	return SafeRate(decimal.NewFromInt(int64(num)), decimal.NewFromInt(int64(den)))
}

// mean promedio simple sin redondear; 0 para una lista vacía.
func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

func avgInt(sum, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(n))).Round(2)
}
