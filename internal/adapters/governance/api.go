package governance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-gov/internal/domain"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
)

// proposalResponse is a proposal as served by the governance data service
type proposalResponse struct {
	ID  string `json:"id"`
	Dao struct {
		Address common.Address `json:"address"`
	} `json:"dao"`
	CreatorAddress       common.Address          `json:"creatorAddress"`
	Status               string                  `json:"status"`
	CreationDate         time.Time               `json:"creationDate"`
	StartDate            time.Time               `json:"startDate"`
	EndDate              time.Time               `json:"endDate"`
	ExecutionDate        *time.Time              `json:"executionDate"`
	ExecutionBlockNumber uint64                  `json:"executionBlockNumber"`
	Metadata             models.ProposalMetadata `json:"metadata"`
	Actions              []models.RawAction      `json:"actions"`
	Result               struct {
		Yes     *math.HexOrDecimal256 `json:"yes"`
		No      *math.HexOrDecimal256 `json:"no"`
		Abstain *math.HexOrDecimal256 `json:"abstain"`
	} `json:"result"`
	VoterList []common.Address `json:"voterList"`
	Settings  struct {
		MinParticipationThresholdPower *math.HexOrDecimal256 `json:"minParticipationThresholdPower"`
		SupportThreshold               uint64                `json:"supportThreshold"`
		SnapshotBlockNumber            uint64                `json:"snapshotBlockNumber"`
	} `json:"settings"`
}

type membersResponse struct {
	Members []common.Address `json:"members"`
}

// APIClient reads proposals and members from the governance data service
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewAPIClient creates a new governance data service client
func NewAPIClient(baseURL string, timeout time.Duration, log *slog.Logger) *APIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// GetProposal retrieves a proposal by id. A missing proposal returns nil
// without error.
func (c *APIClient) GetProposal(ctx context.Context, id string) (*models.ProposalSnapshot, error) {
	var resp proposalResponse
	found, err := c.get(ctx, "/proposals/"+url.PathEscape(id), &resp)
	if err != nil || !found {
		return nil, err
	}

	status, err := models.ParseProposalStatus(resp.Status)
	if err != nil {
		return nil, err
	}

	return models.NewProposalSnapshot(models.ProposalSnapshotData{
		ID:             resp.ID,
		DaoAddress:     resp.Dao.Address,
		Creator:        resp.CreatorAddress,
		Status:         status,
		CreationDate:   resp.CreationDate,
		StartDate:      resp.StartDate,
		EndDate:        resp.EndDate,
		ExecutionDate:  resp.ExecutionDate,
		ExecutionBlock: resp.ExecutionBlockNumber,
		Metadata:       resp.Metadata,
		Actions:        lo.Map(resp.Actions, func(a models.RawAction, _ int) models.Action { return models.DecodeAction(a) }),
		Tally: models.Tally{
			Yes:     toBig(resp.Result.Yes),
			No:      toBig(resp.Result.No),
			Abstain: toBig(resp.Result.Abstain),
		},
		VoterList: resp.VoterList,
		Parameters: models.ProposalParameters{
			MinParticipationThresholdPower: toBig(resp.Settings.MinParticipationThresholdPower),
			SupportThreshold:               resp.Settings.SupportThreshold,
			SnapshotBlock:                  resp.Settings.SnapshotBlockNumber,
		},
	}), nil
}

// GetMembers lists the member addresses of dao.
func (c *APIClient) GetMembers(ctx context.Context, dao common.Address) ([]common.Address, error) {
	var resp membersResponse
	found, err := c.get(ctx, "/daos/"+dao.Hex()+"/members", &resp)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: organization %s", domain.ErrNotFound, dao.Hex())
	}
	return resp.Members, nil
}

// get decodes the JSON body of path into out. It reports false for 404.
func (c *APIClient) get(ctx context.Context, path string, out interface{}) (bool, error) {
	if c.baseURL == "" {
		return false, fmt.Errorf("%w: no governance API configured", domain.ErrNotReady)
	}
	reqURL := c.baseURL + path
	c.log.Debug("GET", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return true, nil
}

func toBig(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set((*big.Int)(v))
}
