package governance

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/bindings"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// ContractCaller runs read-only contract calls
type ContractCaller interface {
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

// ClientAdapter implements usecase.GovernanceClient. Proposals and members
// come from the governance data service, voting power and settings from
// the diamond, and writes go through the chain writer.
type ClientAdapter struct {
	api    *APIClient
	caller ContractCaller
	writer usecase.ChainWriter

	dao          common.Address
	diamond      common.Address
	verification common.Address

	mining     *bindings.IMiningRewardPoolFacet
	reward     *bindings.IVerificationRewardPoolFacet
	proposals  *bindings.IPartialVotingProposalFacet
	structure  *bindings.IGovernanceStructure
	signVerify *bindings.SignVerification

	log *slog.Logger
}

// NewClientAdapter creates a new governance client
func NewClientAdapter(cfg *config.RuntimeConfig, caller ContractCaller, writer usecase.ChainWriter, log *slog.Logger) *ClientAdapter {
	log = log.With("component", "governance")
	return &ClientAdapter{
		api:          NewAPIClient(cfg.GovernanceAPI, cfg.Timeout, log),
		caller:       caller,
		writer:       writer,
		dao:          cfg.DaoAddress,
		diamond:      cfg.DiamondAddress,
		verification: cfg.VerificationAddress,
		mining:       bindings.NewIMiningRewardPoolFacet(),
		reward:       bindings.NewIVerificationRewardPoolFacet(),
		proposals:    bindings.NewIPartialVotingProposalFacet(),
		structure:    bindings.NewIGovernanceStructure(),
		signVerify:   bindings.NewSignVerification(),
		log:          log,
	}
}

// GetProposal retrieves a proposal from the data service.
func (c *ClientAdapter) GetProposal(ctx context.Context, id string) (*models.ProposalSnapshot, error) {
	return c.api.GetProposal(ctx, id)
}

// GetMembers lists the organization's members.
func (c *ClientAdapter) GetMembers(ctx context.Context) ([]common.Address, error) {
	return c.api.GetMembers(ctx, c.dao)
}

// TotalVotingWeight reads the voting power at block.
func (c *ClientAdapter) TotalVotingWeight(ctx context.Context, block uint64) (*big.Int, error) {
	out, err := c.caller.Call(ctx, c.diamond, c.structure.PackTotalVotingPower(new(big.Int).SetUint64(block)))
	if err != nil {
		return nil, err
	}
	return c.structure.UnpackTotalVotingPower(out)
}

// MinDuration reads the minimum proposal duration.
func (c *ClientAdapter) MinDuration(ctx context.Context) (time.Duration, error) {
	out, err := c.caller.Call(ctx, c.diamond, c.proposals.PackGetMinDuration())
	if err != nil {
		return 0, err
	}
	seconds, err := c.proposals.UnpackGetMinDuration(out)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

// PluginAddress returns the diamond address.
func (c *ClientAdapter) PluginAddress() common.Address {
	return c.diamond
}

// DonateToMiningRewardPool moves amount of the governance token into the
// mining reward pool.
func (c *ClientAdapter) DonateToMiningRewardPool(ctx context.Context, amount *big.Int) (usecase.TransactionHandle, error) {
	data, err := c.mining.TryPackDonateToMiningRewardPool(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return c.send(ctx, c.diamond, data)
}

// DonateToVerificationRewardPool moves amount of the governance token into
// the verification reward pool.
func (c *ClientAdapter) DonateToVerificationRewardPool(ctx context.Context, amount *big.Int) (usecase.TransactionHandle, error) {
	data, err := c.reward.TryPackDonateToVerificationRewardPool(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	return c.send(ctx, c.diamond, data)
}

// VerificationReward reads the reward account can claim.
func (c *ClientAdapter) VerificationReward(ctx context.Context, account common.Address) (*big.Int, error) {
	out, err := c.caller.Call(ctx, c.diamond, c.reward.PackGetClaimableReward(account))
	if err != nil {
		return nil, err
	}
	return c.reward.UnpackGetClaimableReward(out)
}

// ClaimVerificationReward claims the signer's verification reward.
func (c *ClientAdapter) ClaimVerificationReward(ctx context.Context) (usecase.TransactionHandle, error) {
	return c.send(ctx, c.diamond, c.reward.PackClaimReward())
}

// VerifyAddress submits a provider-signed verification.
func (c *ClientAdapter) VerifyAddress(ctx context.Context, v models.PendingVerification) (usecase.TransactionHandle, error) {
	if c.verification == (common.Address{}) {
		return nil, fmt.Errorf("%w: no verification contract configured", domain.ErrNotReady)
	}
	data, err := c.signVerify.TryPackVerifyAddress(v.AddressToVerify, v.Hash, big.NewInt(v.Timestamp), v.ProviderID, v.Sig)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, c.verification, data)
}

func (c *ClientAdapter) send(ctx context.Context, to common.Address, data []byte) (usecase.TransactionHandle, error) {
	if to == (common.Address{}) {
		return nil, fmt.Errorf("%w: contract address not configured", domain.ErrNotReady)
	}
	prepared, err := c.writer.Prepare(ctx, usecase.TxRequest{To: to, Data: data})
	if err != nil {
		return nil, err
	}
	c.log.Debug("sending governance transaction", "to", to.Hex(), "method", bindings.MethodName(data))
	return prepared.Write(ctx)
}

// Ensure the adapter implements the interface
var _ usecase.GovernanceClient = (*ClientAdapter)(nil)
