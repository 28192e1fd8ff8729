package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-gov/internal/adapters/blockchain"
	"github.com/trebuchet-org/treb-gov/internal/adapters/fs"
	"github.com/trebuchet-org/treb-gov/internal/adapters/governance"
	"github.com/trebuchet-org/treb-gov/internal/adapters/interactive"
	"github.com/trebuchet-org/treb-gov/internal/adapters/progress"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// BlockchainSet provides the RPC client, reader and signer
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	blockchain.NewReaderAdapter,
	wire.Bind(new(usecase.ChainReader), new(*blockchain.ReaderAdapter)),
	wire.Bind(new(fs.TokenInfoReader), new(*blockchain.ReaderAdapter)),

	blockchain.NewWriterAdapter,
	wire.Bind(new(usecase.ChainWriter), new(*blockchain.WriterAdapter)),
)

// GovernanceSet provides the governance client
var GovernanceSet = wire.NewSet(
	wire.Bind(new(governance.ContractCaller), new(*blockchain.Client)),
	governance.NewClientAdapter,
	wire.Bind(new(usecase.GovernanceClient), new(*governance.ClientAdapter)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewTokenRegistryAdapter,
	wire.Bind(new(usecase.TokenRegistry), new(*fs.TokenRegistryAdapter)),

	fs.NewVerificationStoreAdapter,
	wire.Bind(new(usecase.VerificationStore), new(*fs.VerificationStoreAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.TokenSelector), new(*interactive.SelectorAdapter)),

	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	GovernanceSet,
	FSSet,
	InteractiveSet,
)
