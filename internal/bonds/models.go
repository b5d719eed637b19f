package bonds

import (
	"math"
	"time"

	"bondbuy/internal/verification"
)

// Bond is one listing in the marketplace catalog. Supply is tracked as
// issued-out-of-total so the verification rules can compute remaining units.
type Bond struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	APY          float64   `json:"apy"`
	MaturityDate time.Time `json:"maturity_date"`
	PricePerUnit float64   `json:"price_per_unit"`
	Risk         string    `json:"risk"`
	Duration     string    `json:"duration"`
	TotalSupply  int64     `json:"total_supply"`
	IssuedSupply int64     `json:"issued_supply"`
	Active       bool      `json:"active"`
}

// RemainingSupply returns the unissued units.
func (b Bond) RemainingSupply() int64 {
	return b.TotalSupply - b.IssuedSupply
}

// APYBasisPoints converts the percentage APY into integer basis points,
// the unit the verification rules operate in.
func (b Bond) APYBasisPoints() int64 {
	return int64(math.Round(b.APY * 100))
}

// Metadata projects the bond into the shape the rule evaluator consumes.
func (b Bond) Metadata() verification.BondMetadata {
	return verification.BondMetadata{
		ActiveStatus:   b.Active,
		TotalSupply:    b.TotalSupply,
		IssuedSupply:   b.IssuedSupply,
		APYBasisPoints: b.APYBasisPoints(),
		MaturityDate:   b.MaturityDate,
	}
}
