package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Member is an organization member with their governance token balance.
// Balance is nil when it was not requested or could not be read.
type Member struct {
	Address common.Address `json:"address"`
	Balance *big.Int       `json:"balance"`
}

// VerificationWindow is how long a signed verification may be submitted.
const VerificationWindow = time.Hour

// PendingVerification is a provider-signed proof waiting to be submitted
// on chain
type PendingVerification struct {
	AddressToVerify common.Address `json:"addressToVerify"`
	Hash            string         `json:"hash"`
	Timestamp       int64          `json:"timestamp"`
	ProviderID      string         `json:"providerId"`
	Sig             []byte         `json:"sig"`
}

// ExpiresAt is the end of the submission window.
func (v PendingVerification) ExpiresAt() time.Time {
	return time.Unix(v.Timestamp, 0).Add(VerificationWindow)
}

// TimeLeft is the remaining submission window, never negative.
func (v PendingVerification) TimeLeft(now time.Time) time.Duration {
	left := v.ExpiresAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
