package cart

// Add-on pricing is a closed set of models. Each model carries its own typed
// payload; there is no untyped configuration blob.

type Modifier interface {
	// Amount returns the charge this modifier adds for a line with the given
	// per-unit base price and quantity. Negative amounts are discounts.
	Amount(unitBase float64, quantity int) float64
}

// FlatFee charges once per line regardless of quantity.
type FlatFee struct {
	Fee float64
}

func (m FlatFee) Amount(_ float64, _ int) float64 {
	return m.Fee
}

// PerUnit charges per printed piece.
type PerUnit struct {
	Fee float64
}

func (m PerUnit) Amount(_ float64, quantity int) float64 {
	return m.Fee * float64(quantity)
}

// Percentage scales with the line's base price. Rate 0.15 means +15%.
type Percentage struct {
	Rate float64
}

func (m Percentage) Amount(unitBase float64, quantity int) float64 {
	return unitBase * float64(quantity) * m.Rate
}

// AddOn couples a catalog add-on with its pricing model.
type AddOn struct {
	ID       string
	Name     string
	Modifier Modifier
}

// QuantityBreak gives a reduced unit price at or above MinQuantity.
type QuantityBreak struct {
	MinQuantity int
	UnitPrice   float64
}

// PriceSheet is the pricing input for one product configuration: the list
// price per unit, volume breaks sorted ascending by MinQuantity, and the
// turnaround multiplier (1.0 for standard service).
type PriceSheet struct {
	UnitBase             float64
	Breaks               []QuantityBreak
	TurnaroundMultiplier float64
}

// Price computes the line total and its breakdown. The base uses the best
// applicable quantity break; the difference against list price is reported
// as savings. Modifiers (add-ons, rush turnaround) are added on top.
func Price(sheet PriceSheet, quantity int, addOns []AddOn) (float64, PriceBreakdown) {
	unit := sheet.UnitBase
	for _, br := range sheet.Breaks {
		if quantity >= br.MinQuantity {
			unit = br.UnitPrice
		}
	}

	base := unit * float64(quantity)
	savings := (sheet.UnitBase - unit) * float64(quantity)

	var modifiers float64
	for _, addOn := range addOns {
		if addOn.Modifier == nil {
			continue
		}
		modifiers += addOn.Modifier.Amount(unit, quantity)
	}

	multiplier := sheet.TurnaroundMultiplier
	if multiplier > 1 {
		modifiers += base * (multiplier - 1)
	}

	total := base + modifiers

	return total, PriceBreakdown{
		Base:      base,
		Modifiers: modifiers,
		Savings:   savings,
	}
}
