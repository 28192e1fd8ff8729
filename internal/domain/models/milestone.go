package models

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// MilestoneVariant controls how a milestone is presented
type MilestoneVariant string

const (
	MilestoneLoading  MilestoneVariant = "loading"
	MilestoneDone     MilestoneVariant = "done"
	MilestoneExecuted MilestoneVariant = "executed"
	MilestoneFailed   MilestoneVariant = "failed"
)

// Milestone labels
const (
	LabelPublished         = "Published"
	LabelStarted           = "Started"
	LabelPending           = "Pending"
	LabelRunning           = "Running"
	LabelSucceeded         = "Succeeded"
	LabelAwaitingExecution = "Awaiting execution"
	LabelDefeated          = "Defeated"
	LabelExecuted          = "Executed"
)

// Milestone is one step of a proposal's history. It is derived on demand
// and never stored.
type Milestone struct {
	Label       string           `json:"label"`
	Variant     MilestoneVariant `json:"variant"`
	Date        *time.Time       `json:"date,omitempty"`
	BlockNumber *uint64          `json:"blockNumber,omitempty"`
}

// VotingSummary is the participation overview of a proposal
type VotingSummary struct {
	// Percentages are whole numbers in 0..100
	CurrentParticipation int             `json:"currentParticipation"`
	MinParticipation     int             `json:"minParticipation"`
	ApprovalThreshold    decimal.Decimal `json:"approvalThreshold"`
	SupportPercent       int             `json:"supportPercent"`
	UniqueVoters         int             `json:"uniqueVoters"`
	TotalVotes           int             `json:"totalVotes"`
	VotesCast            *big.Int        `json:"votesCast"`
	TotalVotingWeight    *big.Int        `json:"totalVotingWeight"`
	QuorumReached        bool            `json:"quorumReached"`
	SupportReached       bool            `json:"supportReached"`
	VotingStart          time.Time       `json:"votingStart"`
	VotingEnd            time.Time       `json:"votingEnd"`
}
