package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
)

// ReceiptRenderer reports the outcome of a sent transaction
type ReceiptRenderer struct {
	out     io.Writer
	network *config.Network
}

// NewReceiptRenderer creates a new receipt renderer. network may be nil.
func NewReceiptRenderer(out io.Writer, network *config.Network) *ReceiptRenderer {
	return &ReceiptRenderer{out: out, network: network}
}

// Render prints the status, hash and block of receipt under title.
func (r *ReceiptRenderer) Render(title string, receipt *types.Receipt) error {
	if receipt == nil {
		return nil
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		fmt.Fprintln(r.out, FormatSuccess(title))
	} else {
		fmt.Fprintln(r.out, FormatError(title+" reverted"))
	}

	fmt.Fprintf(r.out, "  Transaction: %s\n", color.New(color.FgCyan).Sprint(receipt.TxHash.Hex()))
	if receipt.BlockNumber != nil {
		fmt.Fprintf(r.out, "  Block: %s\n", FormatBlock(receipt.BlockNumber.Uint64()))
	}
	fmt.Fprintf(r.out, "  Gas used: %s\n", FormatBlock(receipt.GasUsed))
	if link := r.explorerLink(receipt); link != "" {
		fmt.Fprintf(r.out, "  Explorer: %s\n", color.New(color.FgBlue).Sprint(link))
	}
	return nil
}

func (r *ReceiptRenderer) explorerLink(receipt *types.Receipt) string {
	if r.network == nil || r.network.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(r.network.ExplorerURL, "/") + "/tx/" + receipt.TxHash.Hex()
}
