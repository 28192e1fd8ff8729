package amount

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ThresholdScale is the factor on-chain thresholds are multiplied by so they
// can be stored as integers.
const ThresholdScale = 10_000

const thresholdExponent = 4

var (
	big2   = big.NewInt(2)
	big100 = big.NewInt(100)
	big200 = big.NewInt(200)
)

// Percentage returns round(numerator / denominator * 100) in 0..100.
//
// A zero (or missing) denominator yields 0 so that a quorum can be shown
// before any voting power exists. A numerator above the denominator
// saturates at 100.
func Percentage(numerator, denominator *big.Int) int {
	if denominator == nil || denominator.Sign() <= 0 {
		return 0
	}
	if numerator == nil || numerator.Sign() <= 0 {
		return 0
	}
	// floor((200n + d) / 2d) == round-half-up(100n / d)
	num := new(big.Int).Mul(numerator, big200)
	num.Add(num, denominator)
	den := new(big.Int).Mul(denominator, big2)
	q := num.Quo(num, den)
	if q.Cmp(big100) > 0 {
		return 100
	}
	return int(q.Int64())
}

// ThresholdPercent converts a scaled on-chain threshold into a percentage
// by dividing it by ThresholdScale.
func ThresholdPercent(scaled uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(scaled), -thresholdExponent)
}

// MeetsThreshold reports whether part / total >= ThresholdPercent(scaled) / 100,
// compared exactly.
func MeetsThreshold(part, total *big.Int, scaled uint64) bool {
	if total == nil || total.Sign() <= 0 || part == nil {
		return false
	}
	lhs := new(big.Int).Mul(part, big.NewInt(ThresholdScale*100))
	rhs := new(big.Int).Mul(total, new(big.Int).SetUint64(scaled))
	return lhs.Cmp(rhs) >= 0
}
