/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// txTime returns the transaction's platform-assigned commit timestamp. Every
// endorsing peer sees the same value, unlike a local clock read, so replays
// of the transaction log reproduce identical state.
func txTime(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction timestamp: %v", err)
	}
	return ts.AsTime(), nil
}

// appendEvent pushes one lifecycle event onto the batch history and derives
// the batch's current owner and state from it. History is strictly
// append-only; this is the only code path that moves a batch through its
// lifecycle. Persistence stays with the caller so the read-modify-write unit
// remains a single explicit step.
func appendEvent(batch *Batch, ts time.Time, from, to, step string, report ReportDetail) {
	batch.History = append(batch.History, TraceEvent{
		Timestamp: ts.UTC().Format(time.RFC3339),
		From:      from,
		To:        to,
		Step:      step,
		Report:    report,
	})
	batch.CurrentOwner = to
	batch.CurrentState = step
}
