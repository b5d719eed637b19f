package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

const testWallet = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

// validInput returns an input that passes all six rules at evalTime.
func validInput() Input {
	return Input{
		WalletAddress:  testWallet,
		BondID:         "in-gs-2030",
		BondName:       "India G-Sec 2030 (7.18%)",
		Units:          10,
		InvestedAmount: 1000,
		Bond: BondMetadata{
			ActiveStatus:   true,
			TotalSupply:    1_000_000,
			IssuedSupply:   100_000,
			APYBasisPoints: 718,
			MaturityDate:   evalTime.AddDate(1, 0, 0),
		},
	}
}

func newTestEvaluator() *Evaluator {
	return NewEvaluator(DefaultPolicy(), WithClock(fixedClock(evalTime)))
}

func TestEvaluateAllRulesPass(t *testing.T) {
	verdict, errs := newTestEvaluator().Evaluate(validInput())

	assert.True(t, verdict.AllPassed())
	assert.Empty(t, errs)
	assert.Equal(t, RuleVerdict{
		BondActive:           true,
		SupplyAvailable:      true,
		APYValid:             true,
		MaturityFuture:       true,
		MinimumInvestmentMet: true,
		WalletValid:          true,
	}, verdict)
}

func TestEvaluateInactiveBond(t *testing.T) {
	input := validInput()
	input.Bond.ActiveStatus = false

	verdict, errs := newTestEvaluator().Evaluate(input)

	assert.False(t, verdict.BondActive)
	assert.False(t, verdict.AllPassed())
	assert.Equal(t, []string{"Bond is not active"}, errs)
}

func TestEvaluateSupplyExhausted(t *testing.T) {
	t.Run("fully issued supply always fails", func(t *testing.T) {
		input := validInput()
		input.Bond.IssuedSupply = input.Bond.TotalSupply
		input.Units = 1

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.SupplyAvailable)
		require.Len(t, errs, 1)
		assert.Equal(t, "Insufficient supply: 0 units remaining", errs[0])
	})

	t.Run("error message reports remaining units", func(t *testing.T) {
		input := validInput()
		input.Bond.TotalSupply = 1_000_000
		input.Bond.IssuedSupply = 999_999
		input.Units = 2

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.SupplyAvailable)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "1")
		assert.Equal(t, "Insufficient supply: 1 units remaining", errs[0])
	})

	t.Run("exact remaining supply passes", func(t *testing.T) {
		input := validInput()
		input.Bond.TotalSupply = 100
		input.Bond.IssuedSupply = 90
		input.Units = 10

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.True(t, verdict.SupplyAvailable)
		assert.Empty(t, errs)
	})
}

func TestEvaluateAPYBounds(t *testing.T) {
	cases := []struct {
		name  string
		bps   int64
		valid bool
	}{
		{"zero is invalid", 0, false},
		{"lower bound is valid", 1, true},
		{"upper bound is valid", 2000, true},
		{"above upper bound is invalid", 2001, false},
		{"negative is invalid", -50, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			input.Bond.APYBasisPoints = tc.bps

			verdict, errs := newTestEvaluator().Evaluate(input)

			assert.Equal(t, tc.valid, verdict.APYValid)
			if !tc.valid {
				require.Len(t, errs, 1)
				assert.Contains(t, errs[0], "Invalid APY")
			}
		})
	}
}

func TestEvaluateMaturity(t *testing.T) {
	t.Run("past maturity fails", func(t *testing.T) {
		input := validInput()
		input.Bond.MaturityDate = evalTime.AddDate(-1, 0, 0)

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.MaturityFuture)
		assert.Equal(t, []string{"Bond maturity date has passed"}, errs)
	})

	t.Run("maturity exactly now fails", func(t *testing.T) {
		input := validInput()
		input.Bond.MaturityDate = evalTime

		verdict, _ := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.MaturityFuture)
	})
}

func TestEvaluateMinimumInvestment(t *testing.T) {
	t.Run("below minimum fails", func(t *testing.T) {
		input := validInput()
		input.InvestedAmount = 99

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.MinimumInvestmentMet)
		assert.Equal(t, []string{"Investment below minimum: ₹99"}, errs)
	})

	t.Run("exact minimum passes", func(t *testing.T) {
		input := validInput()
		input.InvestedAmount = 100

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.True(t, verdict.MinimumInvestmentMet)
		assert.Empty(t, errs)
	})
}

func TestEvaluateWalletAddress(t *testing.T) {
	t.Run("empty address fails", func(t *testing.T) {
		input := validInput()
		input.WalletAddress = ""

		verdict, errs := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.WalletValid)
		assert.Equal(t, []string{"Invalid wallet address"}, errs)
	})

	t.Run("short address fails", func(t *testing.T) {
		input := validInput()
		input.WalletAddress = "tooshort"

		verdict, _ := newTestEvaluator().Evaluate(input)

		assert.False(t, verdict.WalletValid)
	})

	t.Run("32 characters passes", func(t *testing.T) {
		input := validInput()
		input.WalletAddress = "12345678901234567890123456789012"

		verdict, _ := newTestEvaluator().Evaluate(input)

		assert.True(t, verdict.WalletValid)
	})
}

func TestEvaluateMessageOrderFollowsRuleOrder(t *testing.T) {
	input := validInput()
	input.Bond.ActiveStatus = false
	input.Bond.APYBasisPoints = 5000
	input.InvestedAmount = 10
	input.WalletAddress = "short"

	verdict, errs := newTestEvaluator().Evaluate(input)

	assert.False(t, verdict.AllPassed())
	require.Len(t, errs, 4)
	assert.Equal(t, "Bond is not active", errs[0])
	assert.Equal(t, "Invalid APY: 5000 basis points", errs[1])
	assert.Equal(t, "Investment below minimum: ₹10", errs[2])
	assert.Equal(t, "Invalid wallet address", errs[3])
}

func TestEvaluateCustomPolicy(t *testing.T) {
	policy := Policy{
		MinimumInvestment:      500,
		APYMinBasisPoints:      100,
		APYMaxBasisPoints:      1000,
		MinWalletAddressLength: 10,
	}
	evaluator := NewEvaluator(policy, WithClock(fixedClock(evalTime)))

	input := validInput()
	input.InvestedAmount = 400
	input.WalletAddress = "exactly10c"

	verdict, errs := evaluator.Evaluate(input)

	assert.False(t, verdict.MinimumInvestmentMet)
	assert.True(t, verdict.WalletValid)
	assert.True(t, verdict.APYValid)
	require.Len(t, errs, 1)
	assert.Equal(t, "Investment below minimum: ₹400", errs[0])
}
