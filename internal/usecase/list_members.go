package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the balance reads issued at once.
const maxConcurrentReads = 8

// ListMembersParams contains parameters for listing members
type ListMembersParams struct {
	WithBalances bool
	Limit        int // 0 lists every member
}

// ListMembersResult contains the members and the total member count
type ListMembersResult struct {
	Members     []models.Member
	MemberCount int
}

// ListMembers is the use case for listing organization members
type ListMembers struct {
	cfg    *config.RuntimeConfig
	gov    GovernanceClient
	reader ChainReader
	sink   ProgressSink
	log    *slog.Logger
}

// NewListMembers creates a new ListMembers use case
func NewListMembers(cfg *config.RuntimeConfig, gov GovernanceClient, reader ChainReader, sink ProgressSink, log *slog.Logger) *ListMembers {
	return &ListMembers{
		cfg:    cfg,
		gov:    gov,
		reader: reader,
		sink:   sink,
		log:    log.With("component", "ListMembers"),
	}
}

// Run lists the members. With balances, members are sorted by governance
// token balance, largest first. A balance that cannot be read is left nil
// and sorts last; it never fails the listing.
func (uc *ListMembers) Run(ctx context.Context, params ListMembersParams) (*ListMembersResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading members",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	addresses, err := uc.gov.GetMembers(ctx)
	if err != nil {
		return nil, domain.ReadFailure("get members", err)
	}

	members := lo.Map(addresses, func(addr common.Address, _ int) models.Member {
		return models.Member{Address: addr}
	})

	if params.WithBalances {
		uc.readBalances(ctx, members)
		SortMembersByBalance(members)
	}

	if params.Limit > 0 && len(members) > params.Limit {
		members = members[:params.Limit]
	}

	return &ListMembersResult{
		Members:     members,
		MemberCount: len(addresses),
	}, nil
}

func (uc *ListMembers) readBalances(ctx context.Context, members []models.Member) {
	var done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i := range members {
		g.Go(func() error {
			balance, err := uc.reader.TokenBalance(gctx, uc.cfg.TokenAddress, members[i].Address)
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "balances",
				Message: "Reading member balances",
				Current: int(done.Add(1)),
				Total:   len(members),
				Spinner: true,
			})
			if err != nil {
				uc.log.Warn("could not read member balance", "member", members[i].Address.Hex(), "error", err)
				return nil
			}
			members[i].Balance = balance
			return nil
		})
	}
	_ = g.Wait()
}

// IsMember reports whether addr is a member of the organization.
func (uc *ListMembers) IsMember(ctx context.Context, addr common.Address) (bool, error) {
	addresses, err := uc.gov.GetMembers(ctx)
	if err != nil {
		return false, domain.ReadFailure("get members", err)
	}
	return lo.Contains(addresses, addr), nil
}

// SortMembersByBalance orders members by balance, largest first, with
// unknown balances last. Equal balances keep their order.
func SortMembersByBalance(members []models.Member) {
	slices.SortStableFunc(members, func(a, b models.Member) int {
		switch {
		case a.Balance == nil && b.Balance == nil:
			return 0
		case a.Balance == nil:
			return 1
		case b.Balance == nil:
			return -1
		default:
			return b.Balance.Cmp(a.Balance)
		}
	})
}
