// Package proposal derives the lifecycle history and voting summary of a
// proposal from a fetched snapshot. Everything here is a pure function of
// its inputs.
package proposal

import (
	"time"

	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// Milestones returns the ordered lifecycle history for p.
//
// Calling it twice with the same snapshot yields equal lists. Unknown
// statuses only produce the Published milestone.
func Milestones(p *models.ProposalSnapshot) []models.Milestone {
	if p == nil {
		return nil
	}

	published := models.Milestone{
		Label:       models.LabelPublished,
		Variant:     models.MilestoneDone,
		Date:        timePtr(p.CreationDate),
		BlockNumber: blockPtr(p.SnapshotBlock()),
	}
	started := models.Milestone{
		Label:   models.LabelStarted,
		Variant: models.MilestoneDone,
		Date:    timePtr(p.StartDate),
	}

	switch p.Status {
	case models.ProposalStatusPending:
		return []models.Milestone{
			published,
			{Label: models.LabelPending, Variant: models.MilestoneLoading, Date: timePtr(p.StartDate)},
		}
	case models.ProposalStatusActive:
		return []models.Milestone{
			published,
			started,
			{Label: models.LabelRunning, Variant: models.MilestoneLoading, Date: timePtr(p.EndDate)},
		}
	case models.ProposalStatusSucceeded:
		milestones := []models.Milestone{
			published,
			started,
			{Label: models.LabelSucceeded, Variant: models.MilestoneDone, Date: timePtr(SucceededAt(p))},
		}
		if len(p.Actions()) > 0 {
			milestones = append(milestones, models.Milestone{
				Label:   models.LabelAwaitingExecution,
				Variant: models.MilestoneLoading,
			})
		}
		return milestones
	case models.ProposalStatusDefeated:
		return []models.Milestone{
			published,
			started,
			{Label: models.LabelDefeated, Variant: models.MilestoneFailed, Date: timePtr(p.EndDate)},
		}
	case models.ProposalStatusExecuted:
		executed := models.Milestone{
			Label:       models.LabelExecuted,
			Variant:     models.MilestoneExecuted,
			BlockNumber: blockPtr(p.ExecutionBlock),
		}
		if p.ExecutionDate != nil {
			executed.Date = timePtr(*p.ExecutionDate)
		}
		return []models.Milestone{
			published,
			started,
			{Label: models.LabelSucceeded, Variant: models.MilestoneDone, Date: timePtr(p.EndDate)},
			executed,
		}
	default:
		return []models.Milestone{published}
	}
}

// SucceededAt is the date a succeeded proposal reached its result: the
// execution date when it was executed before the voting period ended,
// otherwise the end date.
func SucceededAt(p *models.ProposalSnapshot) time.Time {
	if p.ExecutionDate != nil && p.ExecutionDate.Before(p.EndDate) {
		return *p.ExecutionDate
	}
	return p.EndDate
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func blockPtr(n uint64) *uint64 {
	return &n
}
