package proposal

import (
	"math/big"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-gov/internal/domain/amount"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// Summarize computes the participation overview of p against the total
// voting weight at its snapshot block.
func Summarize(p *models.ProposalSnapshot, totalVotingWeight *big.Int) models.VotingSummary {
	if p == nil {
		return models.VotingSummary{}
	}

	tally := p.Tally()
	params := p.Parameters()
	votesCast := tally.Total()
	voters := p.VoterList()

	decisive := new(big.Int)
	if tally.Yes != nil {
		decisive.Add(decisive, tally.Yes)
	}
	if tally.No != nil {
		decisive.Add(decisive, tally.No)
	}

	minPower := params.MinParticipationThresholdPower
	quorum := minPower == nil || votesCast.Cmp(minPower) >= 0

	return models.VotingSummary{
		CurrentParticipation: amount.Percentage(votesCast, totalVotingWeight),
		MinParticipation:     amount.Percentage(minPower, totalVotingWeight),
		ApprovalThreshold:    amount.ThresholdPercent(params.SupportThreshold),
		SupportPercent:       amount.Percentage(tally.Yes, decisive),
		UniqueVoters:         len(lo.Uniq(voters)),
		TotalVotes:           len(voters),
		VotesCast:            votesCast,
		TotalVotingWeight:    models.CopyInt(totalVotingWeight),
		QuorumReached:        quorum,
		SupportReached:       amount.MeetsThreshold(tally.Yes, decisive, params.SupportThreshold),
		VotingStart:          p.StartDate,
		VotingEnd:            p.EndDate,
	}
}
