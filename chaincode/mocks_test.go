/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"crypto/x509"
	"sort"
	"strings"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// txClock is the fixed commit timestamp every test transaction reports.
var txClock = time.Date(2024, 10, 15, 8, 0, 0, 0, time.UTC)

// fakeStub is an in-memory ledger: a state map, lexicographic range scans,
// and a fixed platform-assigned timestamp. Unimplemented stub methods panic
// via the embedded nil interface, which is what we want in tests.
type fakeStub struct {
	shim.ChaincodeStubInterface
	state map[string][]byte
}

func newFakeStub() *fakeStub {
	return &fakeStub{state: map[string][]byte{}}
}

func (s *fakeStub) GetState(key string) ([]byte, error) {
	return s.state[key], nil
}

func (s *fakeStub) PutState(key string, value []byte) error {
	s.state[key] = append([]byte(nil), value...)
	return nil
}

func (s *fakeStub) DelState(key string) error {
	delete(s.state, key)
	return nil
}

func (s *fakeStub) GetStateByRange(startKey, endKey string) (shim.StateQueryIteratorInterface, error) {
	var keys []string
	for k := range s.state {
		if k >= startKey && (endKey == "" || k < endKey) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	iter := &fakeIterator{}
	for _, k := range keys {
		iter.kvs = append(iter.kvs, &queryresult.KV{Key: k, Value: s.state[k]})
	}
	return iter, nil
}

func (s *fakeStub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	return timestamppb.New(txClock), nil
}

type fakeIterator struct {
	kvs []*queryresult.KV
	pos int
}

func (it *fakeIterator) HasNext() bool { return it.pos < len(it.kvs) }

func (it *fakeIterator) Next() (*queryresult.KV, error) {
	kv := it.kvs[it.pos]
	it.pos++
	return kv, nil
}

func (it *fakeIterator) Close() error { return nil }

// fakeIdentity reports a caller organization's MSP ID, the only identity
// surface the contract consults.
type fakeIdentity struct {
	mspID string
}

func (id *fakeIdentity) GetID() (string, error)    { return "x509::" + id.mspID, nil }
func (id *fakeIdentity) GetMSPID() (string, error) { return id.mspID, nil }
func (id *fakeIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}
func (id *fakeIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}
func (id *fakeIdentity) AssertAttributeValue(string, string) error {
	return nil
}

type fakeContext struct {
	stub     *fakeStub
	identity *fakeIdentity
}

func (c *fakeContext) GetStub() shim.ChaincodeStubInterface { return c.stub }
func (c *fakeContext) GetClientIdentity() cid.ClientIdentity {
	return c.identity
}

// newTestContext returns a transaction context whose caller resolved from
// mspID, backed by a fresh empty ledger.
func newTestContext(mspID string) (*fakeContext, *fakeStub) {
	stub := newFakeStub()
	return &fakeContext{stub: stub, identity: &fakeIdentity{mspID: mspID}}, stub
}

// as swaps the caller organization while keeping the same ledger.
func (c *fakeContext) as(mspID string) *fakeContext {
	return &fakeContext{stub: c.stub, identity: &fakeIdentity{mspID: mspID}}
}

// batchKeysIn lists the batch-namespace keys currently stored, for
// zero-side-effect assertions.
func batchKeysIn(stub *fakeStub) []string {
	var keys []string
	for k := range stub.state {
		if strings.HasPrefix(k, batchKeyPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
