// Package amount converts on-chain integer token amounts into display values.
//
// All arithmetic is exact: values are held as shopspring decimals (big.Int
// coefficient with a base-10 exponent) and only rounded when producing the
// final string. Rounding is half-up (half away from zero) everywhere.
package amount

import (
	"fmt"
	stdmath "math"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

const (
	// DefaultDisplayDecimals is the number of fractional digits shown when
	// the caller does not ask for a specific precision.
	DefaultDisplayDecimals = 2

	// MaxDisplayDecimals caps the rendered fractional digits.
	MaxDisplayDecimals = 20

	// abbreviationMagnitude is the power of ten from which values switch to
	// "<mantissa>*10^<exponent>" notation.
	abbreviationMagnitude = 18
)

var abbreviationThreshold = decimal.New(1, abbreviationMagnitude)

// numberPattern accepts unsigned decimal numbers: digits with an optional
// fractional part.
var numberPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// DisplaySpec governs how a TokenAmount is rendered
type DisplaySpec struct {
	DisplayDecimals int
	Symbol          string
}

// ToDecimal returns raw / 10^decimals without any rounding.
func ToDecimal(raw *big.Int, decimals int) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Zero, fmt.Errorf("%w: missing value", domain.ErrInvalidAmount)
	}
	if raw.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: negative value %s", domain.ErrInvalidAmount, raw)
	}
	if decimals < 0 || decimals > stdmath.MaxInt32 {
		return decimal.Zero, fmt.Errorf("%w: decimals %d out of range", domain.ErrInvalidAmount, decimals)
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)), nil
}

// Format renders raw scaled by decimals with displayDecimals fractional
// digits, followed by the symbol when one is given.
//
// displayDecimals is clamped into [0, 20]. Zero always renders as "0".
// Values whose integer part reaches 10^18 are abbreviated to
// "<mantissa>*10^<exponent>" with the exponent a multiple of three and the
// mantissa a rounded integer below 1000.
func Format(raw *big.Int, decimals, displayDecimals int, symbol string) (string, error) {
	value, err := ToDecimal(raw, decimals)
	if err != nil {
		return "", err
	}
	if value.IsZero() {
		return withSymbol("0", symbol), nil
	}
	if value.Truncate(0).Cmp(abbreviationThreshold) >= 0 {
		return withSymbol(abbreviate(value), symbol), nil
	}
	return withSymbol(value.StringFixed(int32(ClampDisplayDecimals(displayDecimals))), symbol), nil
}

// FormatAmount renders a TokenAmount with the given display settings.
func FormatAmount(a models.TokenAmount, display DisplaySpec) (string, error) {
	return Format(a.Raw(), int(a.Decimals()), display.DisplayDecimals, display.Symbol)
}

// ClampDisplayDecimals limits the requested precision to [0, MaxDisplayDecimals].
func ClampDisplayDecimals(displayDecimals int) int {
	if displayDecimals < 0 {
		return 0
	}
	if displayDecimals > MaxDisplayDecimals {
		return MaxDisplayDecimals
	}
	return displayDecimals
}

// abbreviate assumes value >= 10^18.
func abbreviate(value decimal.Decimal) string {
	magnitude := len(value.Truncate(0).BigInt().String()) - 1
	exponent := magnitude - magnitude%3
	mantissa := value.Shift(-int32(exponent)).Round(0)
	// 999.5e18 rounds up into the next group
	if mantissa.Cmp(decimal.NewFromInt(1000)) >= 0 {
		exponent += 3
		mantissa = value.Shift(-int32(exponent)).Round(0)
	}
	return fmt.Sprintf("%s*10^%d", mantissa.String(), exponent)
}

func withSymbol(s, symbol string) string {
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// Parse converts a human readable decimal string into raw token units.
// It rejects signs, whitespace, exponents and more fractional digits than
// the token supports.
func Parse(s string, decimals int) (*big.Int, error) {
	if decimals < 0 || decimals > stdmath.MaxInt32 {
		return nil, fmt.Errorf("%w: decimals %d out of range", domain.ErrInvalidAmount, decimals)
	}
	if !numberPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, s)
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		if frac := strings.TrimRight(s[i+1:], "0"); len(frac) > decimals {
			return nil, fmt.Errorf("%w: %q has more than %d decimals", domain.ErrInvalidAmount, s, decimals)
		}
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return value.Shift(int32(decimals)).BigInt(), nil
}
