/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Key-space convention: batches and products live under distinct prefixes so
// range queries can scan one namespace in a single pass.
const (
	batchKeyPrefix   = "batch_"
	productKeyPrefix = "product_"
)

func batchKey(batchID string) string     { return batchKeyPrefix + batchID }
func productKey(productID string) string { return productKeyPrefix + productID }

// ledgerStore is the sole read/write surface over the host key-value ledger.
// The ledger has no partial-record update, so put always replaces the whole
// document; mutating entry points read the full record, modify it in memory,
// and write it back within one transaction.
type ledgerStore struct {
	stub shim.ChaincodeStubInterface
}

func newLedgerStore(stub shim.ChaincodeStubInterface) *ledgerStore {
	return &ledgerStore{stub: stub}
}

// GetBatch reads and unmarshals a batch, or ErrNotFound.
func (s *ledgerStore) GetBatch(batchID string) (*Batch, error) {
	data, err := s.stub.GetState(batchKey(batchID))
	if err != nil {
		return nil, fmt.Errorf("failed to read batch %s: %v", batchID, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: batch %s", ErrNotFound, batchID)
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch %s: %v", batchID, err)
	}
	return &batch, nil
}

// PutBatch overwrites the full batch document.
func (s *ledgerStore) PutBatch(batch *Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal batch %s: %v", batch.BatchID, err)
	}
	return s.stub.PutState(batchKey(batch.BatchID), data)
}

// BatchExists reports whether a batch key is populated.
func (s *ledgerStore) BatchExists(batchID string) (bool, error) {
	data, err := s.stub.GetState(batchKey(batchID))
	if err != nil {
		return false, fmt.Errorf("failed to read batch %s: %v", batchID, err)
	}
	return data != nil, nil
}

// ScanBatches walks every key in the batch namespace in ledger-storage order.
// Records that fail to unmarshal are skipped rather than failing the whole
// scan; a single corrupt document must not take down the read path.
func (s *ledgerStore) ScanBatches() ([]*Batch, error) {
	iter, err := s.stub.GetStateByRange(batchKeyPrefix, batchKeyPrefix+"~")
	if err != nil {
		return nil, fmt.Errorf("failed to scan batches: %v", err)
	}
	defer iter.Close()

	var batches []*Batch
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed during batch scan: %v", err)
		}
		var batch Batch
		if err := json.Unmarshal(kv.Value, &batch); err != nil {
			continue
		}
		batches = append(batches, &batch)
	}
	return batches, nil
}

// GetProduct reads and unmarshals a product, or ErrNotFound.
func (s *ledgerStore) GetProduct(productID string) (*Product, error) {
	data, err := s.stub.GetState(productKey(productID))
	if err != nil {
		return nil, fmt.Errorf("failed to read product %s: %v", productID, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %s: %v", productID, err)
	}
	return &product, nil
}

// PutProduct overwrites the full product document.
func (s *ledgerStore) PutProduct(product *Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product %s: %v", product.ProductID, err)
	}
	return s.stub.PutState(productKey(product.ProductID), data)
}

// ProductExists reports whether a product key is populated.
func (s *ledgerStore) ProductExists(productID string) (bool, error) {
	data, err := s.stub.GetState(productKey(productID))
	if err != nil {
		return false, fmt.Errorf("failed to read product %s: %v", productID, err)
	}
	return data != nil, nil
}
