package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// MembersRenderer renders the member list
type MembersRenderer struct {
	out   io.Writer
	token models.Token
}

// NewMembersRenderer creates a new members renderer
func NewMembersRenderer(out io.Writer, token models.Token) *MembersRenderer {
	return &MembersRenderer{out: out, token: token}
}

// Render renders the members table
func (r *MembersRenderer) Render(result *usecase.ListMembersResult) error {
	if len(result.Members) == 0 {
		fmt.Fprintln(r.out, "No members found")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.AppendHeader(table.Row{"#", "Address", "Balance"})
	for i, m := range result.Members {
		t.AppendRow(table.Row{i + 1, m.Address.Hex(), FormatValue(m.Balance, r.token.Decimals, r.token.Symbol)})
	}
	fmt.Fprintln(r.out, t.Render())

	shown := len(result.Members)
	if shown < result.MemberCount {
		fmt.Fprintf(r.out, "\nShowing %d of %d members\n", shown, result.MemberCount)
	} else {
		fmt.Fprintf(r.out, "\n%s\n", color.New(color.Faint).Sprintf("%d members", result.MemberCount))
	}
	return nil
}

// BalancesRenderer renders the token balances of an account
type BalancesRenderer struct {
	out io.Writer
}

// NewBalancesRenderer creates a new balances renderer
func NewBalancesRenderer(out io.Writer) *BalancesRenderer {
	return &BalancesRenderer{out: out}
}

// Render renders one row per token. Tokens whose balance could not be read
// show the error instead.
func (r *BalancesRenderer) Render(result *usecase.ShowBalancesResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Balances of %s\n", result.Account.Hex())

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.AppendHeader(table.Row{"Token", "Balance", "Address"})
	for _, b := range result.Balances {
		address := "native"
		if !b.Token.IsNativeToken {
			address = b.Token.Address.Hex()
		}
		balance := FormatValue(b.Balance, b.Token.Decimals, "")
		if b.Err != nil {
			balance = color.New(color.FgRed).Sprint("unavailable")
		}
		t.AppendRow(table.Row{b.Token.Symbol, balance, address})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}
