package models

import (
	"fmt"
	"math/big"
	"strings"
)

// Pool is a treasury destination for deposited assets
type Pool string

const (
	PoolGeneral            Pool = "General"
	PoolMiningReward       Pool = "Mining reward"
	PoolVerificationReward Pool = "Verification reward"
)

// Pools lists the destinations in display order.
var Pools = []Pool{PoolGeneral, PoolMiningReward, PoolVerificationReward}

// ParsePool accepts the display name or a short form ("general", "mining",
// "verification").
func ParsePool(s string) (Pool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general":
		return PoolGeneral, nil
	case "mining", "mining reward", "mining-reward":
		return PoolMiningReward, nil
	case "verification", "verification reward", "verification-reward":
		return PoolVerificationReward, nil
	}
	return "", fmt.Errorf("unknown pool %q (valid: general, mining, verification)", s)
}

// DepositPath is the transaction path a deposit is sent through
type DepositPath string

const (
	PathNone           DepositPath = ""
	PathPoolDonation   DepositPath = "pool-donation"
	PathNativeTransfer DepositPath = "native-transfer"
	PathTokenTransfer  DepositPath = "token-transfer"
)

// DepositRequest is the user's deposit form. Nil fields are not specified yet.
type DepositRequest struct {
	Token  *Token
	Pool   *Pool
	Amount *big.Int
}

// Clone copies the request so the caller's pointers are not retained.
func (r DepositRequest) Clone() DepositRequest {
	out := DepositRequest{Amount: CopyInt(r.Amount)}
	if r.Token != nil {
		t := *r.Token
		out.Token = &t
	}
	if r.Pool != nil {
		p := *r.Pool
		out.Pool = &p
	}
	return out
}

// Complete reports whether token, pool and amount are all set.
func (r DepositRequest) Complete() bool {
	return r.Token != nil && r.Pool != nil && r.Amount != nil
}

// AllowanceState describes whether an allowance must be granted before depositing.
// ApprovedAmount is nil while unknown.
type AllowanceState struct {
	ApprovedAmount *big.Int
	Required       bool
}

// SelectDepositPath picks the single valid path for a request. Pools other
// than General always take the donation path; General splits on whether the
// token is the native currency.
func SelectDepositPath(req DepositRequest) DepositPath {
	if req.Pool == nil || req.Token == nil {
		return PathNone
	}
	if *req.Pool != PoolGeneral {
		return PathPoolDonation
	}
	if req.Token.IsNativeToken {
		return PathNativeTransfer
	}
	return PathTokenTransfer
}

// AllowanceRequired is false for the General pool, which transfers directly.
func AllowanceRequired(pool *Pool) bool {
	return pool != nil && *pool != PoolGeneral
}

// IsApproved reports whether the deposit may proceed without a new approval.
//
// An unknown amount with a positive approval passes optimistically; an
// unknown approval never passes for a pool that requires one.
func IsApproved(pool *Pool, amount, approved *big.Int) bool {
	if !AllowanceRequired(pool) {
		return true
	}
	if approved == nil {
		return false
	}
	if amount == nil {
		return approved.Sign() > 0
	}
	return approved.Cmp(amount) >= 0
}
