/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// operation names the mutating entry points for the permission table. Reads
// are unrestricted and never consult the table.
type operation string

const (
	opSeed          operation = "Seed"
	opCreateBatch   operation = "CreateBatch"
	opAdvanceBatch  operation = "AdvanceAndTransfer"
	opCreateProduct operation = "CreateProduct"
)

// allowedRoles is the declared policy: operation -> set of roles that may
// invoke it. Entry points consult it before reading or writing any state, so
// a rejected call has zero side effects.
var allowedRoles = map[operation]map[Role]bool{
	opSeed:          {RoleProducer: true},
	opCreateBatch:   {RoleProducer: true},
	opAdvanceBatch:  {RoleProducer: true, RoleIntermediary: true},
	opCreateProduct: {RoleIntermediary: true},
}

// checkPermission resolves the caller's role from the transaction's client
// identity and rejects the call if the role is not allowed for op.
func checkPermission(ctx contractapi.TransactionContextInterface, op operation) error {
	mspID, err := ctx.GetClientIdentity().GetMSPID()
	if err != nil {
		return fmt.Errorf("failed to read caller identity: %v", err)
	}
	role := resolveRole(mspID)
	if !allowedRoles[op][role] {
		return fmt.Errorf("%w: role %s may not invoke %s", ErrPermissionDenied, role.DisplayName(), op)
	}
	return nil
}
