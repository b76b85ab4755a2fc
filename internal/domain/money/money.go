package money

import "github.com/shopspring/decimal"

// Reglas monetarias del ledger: todo importe es decimal y el redondeo (mitad hacia
// arriba, 2 decimales) se aplica una sola vez, al calcular cada subtotal; los
// agregados suman valores ya redondeados y no se re-redondean.

// Round redondea un importe a 2 decimales, mitad hacia arriba.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineSubtotal calcula precioUnitario * cantidad con el redondeo de la casa.
func LineSubtotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return Round(unitPrice.Mul(quantity))
}

// AverageCost implementa el costo promedio ponderado sobre una entrada:
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func AverageCost(onHand int64, currentCost decimal.Decimal, qtyIn int64, unitCostIn decimal.Decimal) decimal.Decimal {
	stock := decimal.NewFromInt(onHand)
	entrada := decimal.NewFromInt(qtyIn)
	sum := stock.Add(entrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stock.Mul(currentCost).Add(entrada.Mul(unitCostIn))
	return num.Div(sum)
}
