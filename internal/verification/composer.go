package verification

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gowebpki/jcs"
)

// receiptIDPrefix tags every receipt identifier issued by this service.
const receiptIDPrefix = "WEIL"

// receiptDigest is the canonical record the content hash commits to. Field
// set and names are part of the receipt contract; changing them breaks hash
// verification of previously issued receipts.
type receiptDigest struct {
	WalletAddress  string          `json:"wallet_address"`
	BondID         string          `json:"bond_id"`
	BondName       string          `json:"bond_name"`
	Units          float64         `json:"units"`
	InvestedAmount float64         `json:"invested_amount"`
	Rules          RuleVerdict     `json:"rules_verified"`
	Status         ExecutionStatus `json:"execution_status"`
	Timestamp      string          `json:"timestamp"`
	Executor       string          `json:"executor"`
}

// Composer assembles the pre-persistence receipt: execution status, content
// hash, and identifier. Hashing is SHA-256 over an RFC 8785 canonicalized
// JSON serialization, so identical inputs at the same instant always produce
// the same digest.
type Composer struct {
	executor string
	clock    Clock
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithComposerClock sets the clock function for testability.
func WithComposerClock(clock Clock) ComposerOption {
	return func(c *Composer) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewComposer constructs a Composer. The executor name is folded into every
// content hash.
func NewComposer(executor string, opts ...ComposerOption) *Composer {
	c := &Composer{
		executor: executor,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compose builds the receipt for one evaluated mint attempt. The ledger
// reference fields are left empty; the workflow fills them from the ledger
// collaborator before persisting.
func (c *Composer) Compose(input Input, verdict RuleVerdict, errs []string) (ExecutionReceipt, error) {
	status := StatusFailed
	if verdict.AllPassed() {
		status = StatusVerified
	}

	createdAt := c.clock().UTC()

	digest := receiptDigest{
		WalletAddress:  input.WalletAddress,
		BondID:         input.BondID,
		BondName:       input.BondName,
		Units:          input.Units,
		InvestedAmount: input.InvestedAmount,
		Rules:          verdict,
		Status:         status,
		Timestamp:      createdAt.Format(time.RFC3339Nano),
		Executor:       c.executor,
	}

	hash, err := hashDigest(digest)
	if err != nil {
		return ExecutionReceipt{}, fmt.Errorf("hash receipt: %w", err)
	}

	var errCopy []string
	if len(errs) > 0 {
		errCopy = append([]string(nil), errs...)
	}

	return ExecutionReceipt{
		ReceiptID:      receiptID(createdAt, hash),
		ReceiptHash:    hash,
		WalletAddress:  input.WalletAddress,
		BondID:         input.BondID,
		BondName:       input.BondName,
		Units:          input.Units,
		InvestedAmount: input.InvestedAmount,
		Rules:          verdict,
		Status:         status,
		Errors:         errCopy,
		CreatedAt:      createdAt,
	}, nil
}

// hashDigest canonicalizes the digest record and returns its SHA-256 hex.
func hashDigest(d receiptDigest) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// receiptID formats PREFIX-<epochMillis>-<HASH8>. Unique in practice; a
// duplicate surfaces as a store conflict, never a silent overwrite.
func receiptID(at time.Time, hash string) string {
	return receiptIDPrefix + "-" +
		strconv.FormatInt(at.UnixMilli(), 10) + "-" +
		strings.ToUpper(hash[:8])
}
