package verification

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedLedgerRecordExecution(t *testing.T) {
	ledger := NewSimulatedLedger("EIBS-2.0-Testnet", testExecutor)

	ref, err := ledger.RecordExecution(context.Background(), ExecutionReceipt{})
	require.NoError(t, err)

	assert.Equal(t, "EIBS-2.0-Testnet", ref.Network)
	assert.Equal(t, testExecutor, ref.Executor)
	assert.Regexp(t, regexp.MustCompile(`^DEMO-BLOCK-\d{1,6}$`), ref.Block)
}
