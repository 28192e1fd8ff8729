package models

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProposalStatus represents the status of a governance proposal
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusActive    ProposalStatus = "active"
	ProposalStatusSucceeded ProposalStatus = "succeeded"
	ProposalStatusDefeated  ProposalStatus = "defeated"
	ProposalStatusExecuted  ProposalStatus = "executed"
)

// ProposalStatuses lists every status in lifecycle order.
var ProposalStatuses = []ProposalStatus{
	ProposalStatusPending,
	ProposalStatusActive,
	ProposalStatusSucceeded,
	ProposalStatusDefeated,
	ProposalStatusExecuted,
}

// ParseProposalStatus accepts the lower or upper case status name.
func ParseProposalStatus(s string) (ProposalStatus, error) {
	status := ProposalStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ProposalStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown proposal status %q", s)
}

// Tally holds the voting power cast per option
type Tally struct {
	Yes     *big.Int `json:"yes"`
	No      *big.Int `json:"no"`
	Abstain *big.Int `json:"abstain"`
}

// Total returns yes + no + abstain.
func (t Tally) Total() *big.Int {
	total := new(big.Int)
	for _, v := range []*big.Int{t.Yes, t.No, t.Abstain} {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}

func (t Tally) clone() Tally {
	return Tally{Yes: CopyInt(t.Yes), No: CopyInt(t.No), Abstain: CopyInt(t.Abstain)}
}

// ProposalParameters are the voting rules captured when the proposal was created.
// SupportThreshold is scaled by 10^4 on chain (500000 means 50%).
type ProposalParameters struct {
	MinParticipationThresholdPower *big.Int `json:"minParticipationThresholdPower"`
	SupportThreshold               uint64   `json:"supportThreshold"`
	SnapshotBlock                  uint64   `json:"snapshotBlock"`
}

// ProposalResource is a link attached to the proposal metadata
type ProposalResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ProposalMetadata is the human readable part of a proposal
type ProposalMetadata struct {
	Title       string             `json:"title"`
	Summary     string             `json:"summary"`
	Description string             `json:"description"`
	Resources   []ProposalResource `json:"resources,omitempty"`
}

// ProposalSnapshot is one fetch of a proposal. It is never patched: a refetch
// produces a new snapshot that replaces the previous one.
type ProposalSnapshot struct {
	ID             string
	DaoAddress     common.Address
	Creator        common.Address
	Status         ProposalStatus
	CreationDate   time.Time
	StartDate      time.Time
	EndDate        time.Time
	ExecutionDate  *time.Time
	ExecutionBlock uint64
	Metadata       ProposalMetadata

	actions    []Action
	tally      Tally
	voterList  []common.Address
	parameters ProposalParameters
}

// ProposalSnapshotData carries the fields used to build a snapshot
type ProposalSnapshotData struct {
	ID             string
	DaoAddress     common.Address
	Creator        common.Address
	Status         ProposalStatus
	CreationDate   time.Time
	StartDate      time.Time
	EndDate        time.Time
	ExecutionDate  *time.Time
	ExecutionBlock uint64
	Metadata       ProposalMetadata
	Actions        []Action
	Tally          Tally
	VoterList      []common.Address
	Parameters     ProposalParameters
}

// NewProposalSnapshot freezes data into a snapshot, copying every big.Int,
// slice and pointer so later changes to data are not observed.
func NewProposalSnapshot(data ProposalSnapshotData) *ProposalSnapshot {
	var execDate *time.Time
	if data.ExecutionDate != nil {
		d := *data.ExecutionDate
		execDate = &d
	}
	return &ProposalSnapshot{
		ID:             data.ID,
		DaoAddress:     data.DaoAddress,
		Creator:        data.Creator,
		Status:         data.Status,
		CreationDate:   data.CreationDate,
		StartDate:      data.StartDate,
		EndDate:        data.EndDate,
		ExecutionDate:  execDate,
		ExecutionBlock: data.ExecutionBlock,
		Metadata:       data.Metadata,
		actions:        append([]Action(nil), data.Actions...),
		tally:          data.Tally.clone(),
		voterList:      append([]common.Address(nil), data.VoterList...),
		parameters: ProposalParameters{
			MinParticipationThresholdPower: CopyInt(data.Parameters.MinParticipationThresholdPower),
			SupportThreshold:               data.Parameters.SupportThreshold,
			SnapshotBlock:                  data.Parameters.SnapshotBlock,
		},
	}
}

// Actions returns a copy of the proposal actions.
func (p *ProposalSnapshot) Actions() []Action {
	return append([]Action(nil), p.actions...)
}

// Tally returns a copy of the vote tally.
func (p *ProposalSnapshot) Tally() Tally { return p.tally.clone() }

// VoterList returns a copy of the voter addresses, duplicates included.
func (p *ProposalSnapshot) VoterList() []common.Address {
	return append([]common.Address(nil), p.voterList...)
}

// Parameters returns a copy of the voting parameters.
func (p *ProposalSnapshot) Parameters() ProposalParameters {
	params := p.parameters
	params.MinParticipationThresholdPower = CopyInt(params.MinParticipationThresholdPower)
	return params
}

// SnapshotBlock is the block at which voting power was captured.
func (p *ProposalSnapshot) SnapshotBlock() uint64 { return p.parameters.SnapshotBlock }

// VotingSettings are the organization wide voting settings
type VotingSettings struct {
	MinDuration time.Duration `json:"minDuration"`
}
