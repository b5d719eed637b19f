package verification

// Policy holds the eligibility thresholds the evaluator applies. Keeping them
// in one struct lets deployments tune limits without code changes and lets
// tests exercise boundaries directly.
type Policy struct {
	// MinimumInvestment is the smallest accepted order, in currency units.
	MinimumInvestment float64
	// APYMinBasisPoints / APYMaxBasisPoints bound plausible yields.
	APYMinBasisPoints int64
	APYMaxBasisPoints int64
	// MinWalletAddressLength is a length heuristic, not real address
	// validation.
	MinWalletAddressLength int
}

// DefaultPolicy returns the thresholds the demo launched with:
// ₹100 minimum order, 0.01%-20% APY, 32-character wallet addresses.
func DefaultPolicy() Policy {
	return Policy{
		MinimumInvestment:      100,
		APYMinBasisPoints:      1,
		APYMaxBasisPoints:      2000,
		MinWalletAddressLength: 32,
	}
}
