package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/domain/proposal"
)

// ErrSuperseded is returned for a result that arrived after a newer request
// was issued. The result is discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

// ShowProposalResult is everything the proposal page shows
type ShowProposalResult struct {
	Proposal          *models.ProposalSnapshot
	Milestones        []models.Milestone
	Summary           models.VotingSummary
	Actions           []models.Action
	TotalVotingWeight *big.Int
}

// ShowProposal is the use case for fetching a proposal and deriving its
// history and voting summary
type ShowProposal struct {
	cfg  *config.RuntimeConfig
	gov  GovernanceClient
	sink ProgressSink
	log  *slog.Logger
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(cfg *config.RuntimeConfig, gov GovernanceClient, sink ProgressSink, log *slog.Logger) *ShowProposal {
	return &ShowProposal{
		cfg:  cfg,
		gov:  gov,
		sink: sink,
		log:  log.With("component", "ShowProposal"),
	}
}

// Run fetches proposal id and derives milestones, summary and actions.
func (uc *ShowProposal) Run(ctx context.Context, id string) (*ShowProposalResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: no proposal id given", domain.ErrProposalNotFound)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading proposal",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	uc.log.Debug("fetching proposal", "id", id)
	p, err := uc.gov.GetProposal(ctx, id)
	if err != nil {
		return nil, domain.ReadFailure("get proposal", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProposalNotFound, id)
	}
	if uc.cfg.DaoAddress != (common.Address{}) && p.DaoAddress != uc.cfg.DaoAddress {
		return nil, fmt.Errorf("%w: %s belongs to %s", domain.ErrWrongDao, id, p.DaoAddress.Hex())
	}

	weight, err := uc.gov.TotalVotingWeight(ctx, p.SnapshotBlock())
	if err != nil {
		return nil, domain.ReadFailure("total voting weight", err)
	}

	return &ShowProposalResult{
		Proposal:          p,
		Milestones:        proposal.Milestones(p),
		Summary:           proposal.Summarize(p, weight),
		Actions:           p.Actions(),
		TotalVotingWeight: weight,
	}, nil
}

// ProposalWatcher keeps the latest ShowProposal result. Every Refresh takes
// a sequence number; a result is only kept if no newer Refresh started
// while it was in flight.
type ProposalWatcher struct {
	show *ShowProposal

	seq    atomic.Uint64
	mu     sync.Mutex
	latest *ShowProposalResult
	err    error
}

// NewProposalWatcher creates a watcher around show
func NewProposalWatcher(show *ShowProposal) *ProposalWatcher {
	return &ProposalWatcher{show: show}
}

// Refresh refetches proposal id. A result overtaken by a newer Refresh is
// dropped and ErrSuperseded returned in its place.
func (w *ProposalWatcher) Refresh(ctx context.Context, id string) (*ShowProposalResult, error) {
	seq := w.seq.Add(1)
	result, err := w.show.Run(ctx, id)

	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.seq.Load() {
		w.show.log.Debug("discarding stale proposal result", "id", id, "seq", seq)
		return nil, ErrSuperseded
	}
	w.latest, w.err = result, err
	return result, err
}

// Latest returns the most recently kept result.
func (w *ProposalWatcher) Latest() (*ShowProposalResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest, w.err
}

// Watch refreshes id every interval until ctx is done, calling fn with each
// kept result. Terminal errors (not found, wrong organization) stop the loop.
func (w *ProposalWatcher) Watch(ctx context.Context, id string, interval time.Duration, fn func(*ShowProposalResult, error)) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := w.Refresh(ctx, id)
		if !errors.Is(err, ErrSuperseded) {
			fn(result, err)
		}
		if errors.Is(err, domain.ErrProposalNotFound) || errors.Is(err, domain.ErrWrongDao) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
