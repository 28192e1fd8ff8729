package models

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// ActionKind identifies the variant of a proposal action
type ActionKind string

const (
	ActionWithdrawAssets ActionKind = "withdraw_assets"
	ActionMintTokens     ActionKind = "mint_tokens"
	ActionMergePR        ActionKind = "merge_pull_request"
	ActionUnknown        ActionKind = "unknown"
)

// Action is an on-chain call a proposal performs when executed. Concrete
// types are WithdrawAction, MintAction, MergeAction and UnknownAction.
type Action interface {
	Kind() ActionKind
}

// RawAction is an action as reported by the governance client
type RawAction struct {
	Interface string          `json:"interface"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params"`
}

// WithdrawAction moves treasury assets to a recipient
type WithdrawAction struct {
	To           common.Address
	Amount       *big.Int
	TokenAddress common.Address
}

func (WithdrawAction) Kind() ActionKind { return ActionWithdrawAssets }

// MintTarget is one recipient of a mint action
type MintTarget struct {
	To           common.Address
	Amount       *big.Int
	TokenAddress common.Address
}

// MintAction mints governance tokens to one or more wallets
type MintAction struct {
	Mints []MintTarget
}

func (MintAction) Kind() ActionKind { return ActionMintTokens }

// Total returns the sum minted over all targets.
func (a MintAction) Total() *big.Int {
	total := new(big.Int)
	for _, m := range a.Mints {
		if m.Amount != nil {
			total.Add(total, m.Amount)
		}
	}
	return total
}

// MergeAction merges a pull request once the proposal passes
type MergeAction struct {
	Owner      string
	Repo       string
	PullNumber string
	Sha        string
}

func (MergeAction) Kind() ActionKind { return ActionMergePR }

// PullRequestURL links to the pull request on GitHub.
func (a MergeAction) PullRequestURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/pull/%s", a.Owner, a.Repo, a.PullNumber)
}

// UnknownAction is any action the dashboard has no dedicated view for
type UnknownAction struct {
	Interface string
	Method    string
	Params    json.RawMessage
}

func (UnknownAction) Kind() ActionKind { return ActionUnknown }

type transferParams struct {
	To           common.Address        `json:"to"`
	Amount       *math.HexOrDecimal256 `json:"amount"`
	TokenAddress common.Address        `json:"tokenAddress"`
}

type mintParams struct {
	To []transferParams `json:"to"`
}

type mergeParams struct {
	Owner      string `json:"_owner"`
	Repo       string `json:"_repo"`
	PullNumber string `json:"_pull_number"`
	Sha        string `json:"_sha"`
}

// DecodeAction maps a raw action onto its variant. Actions with unknown
// interfaces, or whose params do not decode, become UnknownAction.
func DecodeAction(raw RawAction) Action {
	unknown := UnknownAction{Interface: raw.Interface, Method: raw.Method, Params: raw.Params}

	switch {
	case raw.Interface == "IWithdraw" && raw.Method == "withdraw":
		var p transferParams
		if err := json.Unmarshal(raw.Params, &p); err != nil {
			return unknown
		}
		return WithdrawAction{To: p.To, Amount: toBig(p.Amount), TokenAddress: p.TokenAddress}
	case raw.Interface == "IMint" && raw.Method == "mint":
		var p mintParams
		if err := json.Unmarshal(raw.Params, &p); err != nil {
			return unknown
		}
		mints := make([]MintTarget, 0, len(p.To))
		for _, t := range p.To {
			mints = append(mints, MintTarget{To: t.To, Amount: toBig(t.Amount), TokenAddress: t.TokenAddress})
		}
		return MintAction{Mints: mints}
	case raw.Interface == "IMergeable" && raw.Method == "merge":
		var p mergeParams
		if err := json.Unmarshal(raw.Params, &p); err != nil {
			return unknown
		}
		return MergeAction(p)
	default:
		return unknown
	}
}

// DecodeActions decodes every raw action in order.
func DecodeActions(raws []RawAction) []Action {
	actions := make([]Action, 0, len(raws))
	for _, raw := range raws {
		actions = append(actions, DecodeAction(raw))
	}
	return actions
}

func toBig(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(v))
}
