package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token describes an asset that can be deposited into the organization
type Token struct {
	Address       common.Address `json:"address" toml:"address" yaml:"address"`
	Symbol        string         `json:"symbol" toml:"symbol" yaml:"symbol"`
	Name          string         `json:"name,omitempty" toml:"name" yaml:"name"`
	Decimals      uint8          `json:"decimals" toml:"decimals" yaml:"decimals"`
	IsNativeToken bool           `json:"native,omitempty" toml:"native" yaml:"native"`
}

// NativeToken is the chain's native currency
var NativeToken = Token{Symbol: "ETH", Name: "Ether", Decimals: 18, IsNativeToken: true}

// TokenAmount is an on-chain integer amount scaled by the token's decimals.
// The represented value is Raw / 10^Decimals.
type TokenAmount struct {
	raw      *big.Int
	decimals uint8
}

// NewTokenAmount copies raw so the amount cannot be mutated through the
// caller's pointer.
func NewTokenAmount(raw *big.Int, decimals uint8) TokenAmount {
	if raw == nil {
		raw = new(big.Int)
	}
	return TokenAmount{raw: new(big.Int).Set(raw), decimals: decimals}
}

// Raw returns a copy of the unscaled integer amount.
func (a TokenAmount) Raw() *big.Int {
	if a.raw == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.raw)
}

// Decimals returns the scale of the amount.
func (a TokenAmount) Decimals() uint8 { return a.decimals }

// IsZero reports whether the amount is zero.
func (a TokenAmount) IsZero() bool { return a.raw == nil || a.raw.Sign() == 0 }

// Cmp compares the raw values of two amounts of the same token.
func (a TokenAmount) Cmp(b TokenAmount) int { return a.Raw().Cmp(b.Raw()) }

// CopyInt returns a copy of v, preserving nil.
func CopyInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
