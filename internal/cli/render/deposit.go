package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// DepositRenderer renders the state of a deposit request
type DepositRenderer struct {
	out io.Writer
}

// NewDepositRenderer creates a new deposit renderer
func NewDepositRenderer(out io.Writer) *DepositRenderer {
	return &DepositRenderer{out: out}
}

// Render renders the request, the selected path, balance and allowance.
func (r *DepositRenderer) Render(state usecase.DepositState) error {
	req := state.Request
	token := models.NativeToken
	if req.Token != nil {
		token = *req.Token
	}

	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "Deposit")
	if req.Pool != nil {
		fmt.Fprintf(r.out, "  Pool: %s\n", *req.Pool)
	}
	fmt.Fprintf(r.out, "  Token: %s\n", token.Symbol)
	if req.Amount != nil {
		fmt.Fprintf(r.out, "  Amount: %s\n", FormatValue(req.Amount, token.Decimals, token.Symbol))
	}
	if state.Path != models.PathNone {
		fmt.Fprintf(r.out, "  Method: %s\n", FormatLabel(string(state.Path)))
	}
	if state.Balance != nil {
		fmt.Fprintf(r.out, "  Balance: %s\n", FormatValue(state.Balance, token.Decimals, token.Symbol))
	}

	if state.Allowance.Required {
		allowance := FormatValue(state.Allowance.ApprovedAmount, token.Decimals, token.Symbol)
		fmt.Fprintf(r.out, "  Allowance: %s %s\n", allowance, check(state.IsApproved))
	}

	if state.Error != nil {
		fmt.Fprintln(r.out, FormatError(state.Error.Error()))
	}
	return nil
}
