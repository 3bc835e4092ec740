/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// TraceContract owns all on-ledger state for rice batch provenance: the
// permission model, the batch/product records, and the append-only history
// that makes every state change replayable. Each method runs to completion
// as one deterministic unit; the peer serializes conflicting writes at
// commit time, so no method locks or retries.
type TraceContract struct {
	contractapi.Contract
}

// parseReport decodes a caller-supplied serialized ReportDetail.
func parseReport(reportJSON string) (ReportDetail, error) {
	var report ReportDetail
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return ReportDetail{}, fmt.Errorf("%w: report detail: %v", ErrMalformedInput, err)
	}
	return report, nil
}

// CreateBatch registers a new batch with a genesis event built from the
// initial inspection report. Producer only.
func (c *TraceContract) CreateBatch(ctx contractapi.TransactionContextInterface, batchID, origin, variety, harvestDate, initialReportJSON, owner, initialStep string) error {
	if err := checkPermission(ctx, opCreateBatch); err != nil {
		return err
	}
	store := newLedgerStore(ctx.GetStub())
	exists, err := store.BatchExists(batchID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: batch %s", ErrAlreadyExists, batchID)
	}
	report, err := parseReport(initialReportJSON)
	if err != nil {
		return err
	}
	ts, err := txTime(ctx)
	if err != nil {
		return err
	}

	batch := &Batch{
		BatchID:     batchID,
		Origin:      origin,
		Variety:     variety,
		HarvestDate: harvestDate,
	}
	appendEvent(batch, ts, "", owner, initialStep, report)
	return store.PutBatch(batch)
}

// AdvanceAndTransfer appends one lifecycle event to an existing batch,
// moving it from one party to another (the parties may be equal for an
// in-place step such as a test result). This is the sole mutation path for
// all post-creation lifecycle movement. Producer or intermediary.
func (c *TraceContract) AdvanceAndTransfer(ctx contractapi.TransactionContextInterface, batchID, fromParty, toParty, step, reportJSON string) error {
	if err := checkPermission(ctx, opAdvanceBatch); err != nil {
		return err
	}
	store := newLedgerStore(ctx.GetStub())
	batch, err := store.GetBatch(batchID)
	if err != nil {
		return err
	}
	report, err := parseReport(reportJSON)
	if err != nil {
		return err
	}
	ts, err := txTime(ctx)
	if err != nil {
		return err
	}

	appendEvent(batch, ts, fromParty, toParty, step, report)
	return store.PutBatch(batch)
}

// CreateProduct registers a packaged unit derived from an existing batch.
// The batch reference is validated now and never re-validated afterward.
// Intermediary only.
func (c *TraceContract) CreateProduct(ctx contractapi.TransactionContextInterface, productID, batchID, packageDate, owner string) error {
	if err := checkPermission(ctx, opCreateProduct); err != nil {
		return err
	}
	store := newLedgerStore(ctx.GetStub())
	exists, err := store.ProductExists(productID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: product %s", ErrAlreadyExists, productID)
	}
	batchExists, err := store.BatchExists(batchID)
	if err != nil {
		return err
	}
	if !batchExists {
		return fmt.Errorf("%w: batch %s", ErrNotFound, batchID)
	}

	return store.PutProduct(&Product{
		ProductID:   productID,
		BatchID:     batchID,
		PackageDate: packageDate,
		Owner:       owner,
	})
}

// BatchExists reports whether a batch is registered. Unrestricted.
func (c *TraceContract) BatchExists(ctx contractapi.TransactionContextInterface, batchID string) (bool, error) {
	return newLedgerStore(ctx.GetStub()).BatchExists(batchID)
}

// ReadBatch returns the full batch record including its history.
// Unrestricted.
func (c *TraceContract) ReadBatch(ctx contractapi.TransactionContextInterface, batchID string) (*Batch, error) {
	return newLedgerStore(ctx.GetStub()).GetBatch(batchID)
}

// ReadProduct returns a product joined with the batch it was packaged from.
// Unrestricted.
func (c *TraceContract) ReadProduct(ctx contractapi.TransactionContextInterface, productID string) (*ProductWithBatch, error) {
	store := newLedgerStore(ctx.GetStub())
	product, err := store.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	batch, err := store.GetBatch(product.BatchID)
	if err != nil {
		return nil, err
	}
	return &ProductWithBatch{Product: *product, Batch: *batch}, nil
}

// GetAllBatches returns every batch in ledger-storage order. Unrestricted.
func (c *TraceContract) GetAllBatches(ctx contractapi.TransactionContextInterface) ([]*Batch, error) {
	return newLedgerStore(ctx.GetStub()).ScanBatches()
}

// GetBatchHistory returns the batch's full event trail, oldest first.
// Unrestricted.
func (c *TraceContract) GetBatchHistory(ctx contractapi.TransactionContextInterface, batchID string) ([]TraceEvent, error) {
	batch, err := newLedgerStore(ctx.GetStub()).GetBatch(batchID)
	if err != nil {
		return nil, err
	}
	return batch.History, nil
}

// GetBatchCurrentStatus returns a derived summary of where the batch stands.
// Unrestricted.
func (c *TraceContract) GetBatchCurrentStatus(ctx contractapi.TransactionContextInterface, batchID string) (*BatchStatus, error) {
	batch, err := newLedgerStore(ctx.GetStub()).GetBatch(batchID)
	if err != nil {
		return nil, err
	}
	if len(batch.History) == 0 {
		// Creation always inserts a genesis event; an empty history means the
		// stored record is corrupt.
		return nil, fmt.Errorf("batch %s has no history", batchID)
	}
	last := batch.History[len(batch.History)-1]
	return &BatchStatus{
		BatchID:       batch.BatchID,
		CurrentOwner:  batch.CurrentOwner,
		CurrentState:  batch.CurrentState,
		Variety:       batch.Variety,
		Origin:        batch.Origin,
		HarvestDate:   batch.HarvestDate,
		EventCount:    len(batch.History),
		LastEventTime: last.Timestamp,
	}, nil
}
