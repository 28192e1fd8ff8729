package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-gov/internal/domain/amount"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	numberPrinter = message.NewPrinter(language.English)
	titleCaser    = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatBlock groups the digits of a block number ("1,234,567").
func FormatBlock(n uint64) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatLabel turns an identifier like "withdraw_assets" into "Withdraw Assets".
func FormatLabel(s string) string {
	return titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(s))
}

// FormatDate renders a timestamp in UTC, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

// FormatValue renders a raw amount with the default precision. Values that
// cannot be formatted fall back to the raw integer.
func FormatValue(raw *big.Int, decimals uint8, symbol string) string {
	if raw == nil {
		return color.New(color.Faint).Sprint("unknown")
	}
	s, err := amount.Format(raw, int(decimals), amount.DefaultDisplayDecimals, symbol)
	if err != nil {
		return raw.String()
	}
	return s
}

// ShortAddress abbreviates an address to 0x1234…abcd.
func ShortAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}

// JSON writes v as indented JSON.
func JSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
