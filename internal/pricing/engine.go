// Package pricing derives net prices for canonical rows according to the
// pricing mode of an import run.
package pricing

import (
	"fmt"
	"strings"

	"github.com/kosarica/supplier-import/internal/discount"
	"github.com/kosarica/supplier-import/internal/types"
	"github.com/shopspring/decimal"
)

const (
	// NetPricePlaces is the precision of computed net prices
	NetPricePlaces = 4
	// PercentagePlaces is the precision of derived discount percentages
	PercentagePlaces = 2
)

var hundred = decimal.NewFromInt(100)

// PricingError rejects one row during price resolution
type PricingError struct {
	Row    int
	Reason string
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// Engine resolves prices for one import run. It is read-only after
// construction and safe for concurrent use.
type Engine struct {
	mode      discount.Mode
	structure discount.Structure
	mismatch  string
}

// NewEngine prepares an engine for mode. structure may be nil when the
// supplier has none configured.
func NewEngine(mode discount.Mode, structure discount.Structure) *Engine {
	return &Engine{
		mode:      mode,
		structure: structure,
		mismatch:  mismatch(mode, structure),
	}
}

func (e *Engine) Mode() discount.Mode { return e.mode }

// Mismatch describes why the supplier's discount structure cannot serve the
// pricing mode. It is empty when they are compatible.
func (e *Engine) Mismatch() string { return e.mismatch }

func mismatch(mode discount.Mode, structure discount.Structure) string {
	if required, ok := mode.RequiredStructure(); ok {
		if structure == nil {
			return fmt.Sprintf("pricing mode %s needs a %s discount structure but the supplier has none; configure discount codes for this supplier in its discount structure settings", mode, required)
		}
		if structure.Type() != required {
			return fmt.Sprintf("pricing mode %s needs a %s discount structure but the supplier has %s; configure discount codes for this supplier in its discount structure settings", mode, required, structure.Type())
		}
		return ""
	}
	if structure != nil && string(structure.Type()) != string(mode) {
		return fmt.Sprintf("pricing mode %s does not match the supplier's %s discount structure; change the import mode or update the supplier's discount structure settings", mode, structure.Type())
	}
	return ""
}

// Resolve computes the price fields of row. The returned error is always a
// *PricingError.
func (e *Engine) Resolve(row types.CanonicalRow) (types.CanonicalRow, error) {
	if e.mismatch != "" {
		return types.CanonicalRow{}, &PricingError{Row: row.RowNumber, Reason: e.mismatch}
	}

	var reason string
	switch e.mode {
	case discount.ModeNetOnly:
		reason = resolveNetOnly(&row)
	case discount.ModeCalculated:
		reason = resolveCalculated(&row)
	case discount.ModePercentage:
		reason = e.resolvePercentage(&row)
	case discount.ModeCodeMapping:
		reason = e.resolveCodeMapping(&row)
	default:
		reason = fmt.Sprintf("unknown pricing mode %q", e.mode)
	}
	if reason != "" {
		return types.CanonicalRow{}, &PricingError{Row: row.RowNumber, Reason: reason}
	}
	return row, nil
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

func resolveNetOnly(row *types.CanonicalRow) string {
	if !positive(row.NetPrice) {
		return "net price is required and must be greater than 0"
	}
	row.GrossPrice = nil
	row.DiscountPercentage = nil
	row.DiscountCode = nil
	return ""
}

func resolveCalculated(row *types.CanonicalRow) string {
	if !positive(row.GrossPrice) {
		return "gross price is required and must be greater than 0"
	}
	if !positive(row.NetPrice) {
		return "net price is required and must be greater than 0"
	}
	gross, net := *row.GrossPrice, *row.NetPrice
	if net.GreaterThan(gross) {
		return fmt.Sprintf("net price %s exceeds gross price %s", net, gross)
	}
	pct := gross.Sub(net).Div(gross).Mul(hundred).Round(PercentagePlaces)
	row.DiscountPercentage = &pct
	return ""
}

func (e *Engine) resolvePercentage(row *types.CanonicalRow) string {
	if !positive(row.GrossPrice) {
		return "gross price is required and must be greater than 0"
	}
	pct := row.DiscountPercentage
	if pct == nil {
		if p, ok := e.structure.(discount.Percentage); ok {
			def := p.DefaultPercentage
			pct = &def
		}
	}
	if pct == nil {
		return "discount percentage is missing and the supplier has no default percentage"
	}
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Sprintf("discount percentage %s is out of range [0, 100]", pct)
	}
	net := applyDiscount(*row.GrossPrice, *pct)
	row.DiscountPercentage = pct
	row.NetPrice = &net
	return ""
}

func (e *Engine) resolveCodeMapping(row *types.CanonicalRow) string {
	mapping, ok := e.structure.(discount.CodeMapping)
	if !ok {
		return "supplier has no discount code mapping; configure discount codes for this supplier in its discount structure settings"
	}
	if !positive(row.GrossPrice) {
		return "gross price is required and must be greater than 0"
	}
	if row.DiscountCode == nil || strings.TrimSpace(*row.DiscountCode) == "" {
		return "discount code is required"
	}
	code := *row.DiscountCode
	pct, found := mapping.Lookup(code)
	if !found {
		codes := mapping.Codes()
		if len(codes) == 0 {
			return fmt.Sprintf("discount code %q is not configured (no codes are configured for this supplier)", code)
		}
		return fmt.Sprintf("discount code %q is not configured (available codes: %s)", code, strings.Join(codes, ", "))
	}
	net := applyDiscount(*row.GrossPrice, pct)
	row.DiscountPercentage = &pct
	row.NetPrice = &net
	return ""
}

func applyDiscount(gross, pct decimal.Decimal) decimal.Decimal {
	return gross.Mul(decimal.NewFromInt(1).Sub(pct.Div(hundred))).Round(NetPricePlaces)
}
