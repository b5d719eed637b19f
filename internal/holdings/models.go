package holdings

import "time"

// Holding is one fractional bond position owned by a wallet. Created after
// the external transaction confirms; the tx hash ties it back to the chain.
type Holding struct {
	ID             string    `json:"id"`
	WalletAddress  string    `json:"wallet_address"`
	BondID         string    `json:"bond_id"`
	BondName       string    `json:"bond_name"`
	Units          float64   `json:"units"`
	InvestedAmount float64   `json:"invested_amount"`
	PurchaseDate   time.Time `json:"purchase_date"`
	APY            float64   `json:"apy"`
	MaturityDate   time.Time `json:"maturity_date"`
	TxHash         string    `json:"tx_hash"`
}

const hoursPerYear = 24 * 365

// AccruedYield simulates linear yield accrual since purchase:
// invested * (apy/100) * yearsElapsed. Demo arithmetic, not day-count
// convention accounting.
func (h Holding) AccruedYield(now time.Time) float64 {
	elapsed := now.Sub(h.PurchaseDate)
	if elapsed <= 0 {
		return 0
	}
	years := elapsed.Hours() / hoursPerYear
	return h.InvestedAmount * (h.APY / 100) * years
}
