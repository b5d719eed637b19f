package verification

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExecutor = "BondBuy-MintVerification-v1.0"

func newTestComposer(at time.Time) *Composer {
	return NewComposer(testExecutor, WithComposerClock(fixedClock(at)))
}

func TestComposeVerifiedReceipt(t *testing.T) {
	input := validInput()
	verdict, errs := newTestEvaluator().Evaluate(input)
	require.Empty(t, errs)

	receipt, err := newTestComposer(evalTime).Compose(input, verdict, errs)
	require.NoError(t, err)

	assert.Equal(t, StatusVerified, receipt.Status)
	assert.Equal(t, input.WalletAddress, receipt.WalletAddress)
	assert.Equal(t, input.BondID, receipt.BondID)
	assert.Equal(t, input.BondName, receipt.BondName)
	assert.Equal(t, input.Units, receipt.Units)
	assert.Equal(t, input.InvestedAmount, receipt.InvestedAmount)
	assert.Equal(t, verdict, receipt.Rules)
	assert.Empty(t, receipt.Errors)
	assert.Equal(t, evalTime, receipt.CreatedAt)
	assert.Nil(t, receipt.ExternalTxHash)
	assert.False(t, receipt.ExternalTxConfirmed)
}

func TestComposeFailedReceipt(t *testing.T) {
	input := validInput()
	input.Bond.ActiveStatus = false
	verdict, errs := newTestEvaluator().Evaluate(input)

	receipt, err := newTestComposer(evalTime).Compose(input, verdict, errs)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, receipt.Status)
	assert.Equal(t, []string{"Bond is not active"}, receipt.Errors)
	// A failed verdict still yields a complete, hashable receipt.
	assert.NotEmpty(t, receipt.ReceiptID)
	assert.NotEmpty(t, receipt.ReceiptHash)
}

func TestComposeHashIsDeterministic(t *testing.T) {
	input := validInput()
	verdict, errs := newTestEvaluator().Evaluate(input)

	composer := newTestComposer(evalTime)
	first, err := composer.Compose(input, verdict, errs)
	require.NoError(t, err)
	second, err := composer.Compose(input, verdict, errs)
	require.NoError(t, err)

	assert.Equal(t, first.ReceiptHash, second.ReceiptHash)
	assert.Equal(t, first.ReceiptID, second.ReceiptID)
}

func TestComposeHashChangesWithInput(t *testing.T) {
	input := validInput()
	verdict, errs := newTestEvaluator().Evaluate(input)
	composer := newTestComposer(evalTime)

	base, err := composer.Compose(input, verdict, errs)
	require.NoError(t, err)

	changed := input
	changed.InvestedAmount = 2000
	other, err := composer.Compose(changed, verdict, errs)
	require.NoError(t, err)

	assert.NotEqual(t, base.ReceiptHash, other.ReceiptHash)
}

func TestComposeHashChangesWithTimestamp(t *testing.T) {
	input := validInput()
	verdict, errs := newTestEvaluator().Evaluate(input)

	first, err := newTestComposer(evalTime).Compose(input, verdict, errs)
	require.NoError(t, err)
	second, err := newTestComposer(evalTime.Add(time.Millisecond)).Compose(input, verdict, errs)
	require.NoError(t, err)

	assert.NotEqual(t, first.ReceiptHash, second.ReceiptHash)
	assert.NotEqual(t, first.ReceiptID, second.ReceiptID)
}

func TestComposeReceiptIDFormat(t *testing.T) {
	input := validInput()
	verdict, errs := newTestEvaluator().Evaluate(input)

	receipt, err := newTestComposer(evalTime).Compose(input, verdict, errs)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^WEIL-\d+-[0-9A-F]{8}$`)
	assert.Regexp(t, pattern, receipt.ReceiptID)

	expectedPrefix := fmt.Sprintf("WEIL-%d-", evalTime.UnixMilli())
	assert.True(t, strings.HasPrefix(receipt.ReceiptID, expectedPrefix))
	assert.Equal(t, strings.ToUpper(receipt.ReceiptHash[:8]), receipt.ReceiptID[len(expectedPrefix):])
}

func TestComposeHashIsSHA256Hex(t *testing.T) {
	input := validInput()
	verdict, errs := newTestEvaluator().Evaluate(input)

	receipt, err := newTestComposer(evalTime).Compose(input, verdict, errs)
	require.NoError(t, err)

	assert.Len(t, receipt.ReceiptHash, 64)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), receipt.ReceiptHash)
}
