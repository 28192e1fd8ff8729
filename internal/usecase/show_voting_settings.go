package usecase

import (
	"context"

	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// ShowVotingSettings reads the organization's voting settings
type ShowVotingSettings struct {
	gov GovernanceClient
}

// NewShowVotingSettings creates a new ShowVotingSettings use case
func NewShowVotingSettings(gov GovernanceClient) *ShowVotingSettings {
	return &ShowVotingSettings{gov: gov}
}

// Run executes the show voting settings use case
func (uc *ShowVotingSettings) Run(ctx context.Context) (*models.VotingSettings, error) {
	minDuration, err := uc.gov.MinDuration(ctx)
	if err != nil {
		return nil, domain.ReadFailure("voting settings", err)
	}
	return &models.VotingSettings{MinDuration: minDuration}, nil
}
