package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/treb-gov/internal/domain"
)

type sendFunc func(ctx context.Context) (TransactionHandle, error)

// awaitWrite sends a transaction and waits for its receipt. Rejections from
// either step and reverted receipts are reported as ExternalWriteError.
func awaitWrite(ctx context.Context, sink ProgressSink, op string, send sendFunc) (*types.Receipt, error) {
	tx, err := send(ctx)
	if err != nil {
		return nil, domain.WriteFailure(op, err)
	}

	sink.OnProgress(ctx, ProgressEvent{
		Stage:   op,
		Message: fmt.Sprintf("Waiting for transaction %s", tx.Hash().Hex()),
		Spinner: true,
	})
	receipt, err := tx.Wait(ctx)
	sink.OnProgress(ctx, ProgressEvent{Stage: "completed"})
	if err != nil {
		return nil, domain.WriteFailure(op, err)
	}
	if receipt == nil {
		return nil, domain.WriteFailure(op, fmt.Errorf("no receipt for %s", tx.Hash().Hex()))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		sink.Error(fmt.Sprintf("Transaction %s reverted", tx.Hash().Hex()))
		return receipt, domain.WriteFailure(op, fmt.Errorf("transaction %s reverted", tx.Hash().Hex()))
	}
	sink.Info(fmt.Sprintf("Transaction %s mined in block %s", tx.Hash().Hex(), receipt.BlockNumber))
	return receipt, nil
}
