/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

// Role is the coarse authorization level a caller organization resolves to.
type Role int

const (
	// RoleViewer may only read. Unknown organizations resolve here.
	RoleViewer Role = iota
	// RoleProducer creates batches and records on-farm lifecycle steps.
	RoleProducer
	// RoleIntermediary tests, processes, and packages batches into products.
	RoleIntermediary
)

// DisplayName returns the human-readable role name used in error messages.
func (r Role) DisplayName() string {
	switch r {
	case RoleProducer:
		return "producer"
	case RoleIntermediary:
		return "intermediary"
	default:
		return "viewer"
	}
}

// roleByMSP maps each known organization's MSP ID to its role. The MSP ID is
// the opaque credential the peer attaches to every transaction; the contract
// never authenticates it itself.
var roleByMSP = map[string]Role{
	"FarmerOrgMSP":    RoleProducer,
	"ProcessorOrgMSP": RoleIntermediary,
	"ConsumerOrgMSP":  RoleViewer,
}

// resolveRole maps a caller credential to a role. Unknown credentials resolve
// to the least-privileged role rather than an error, so an unrecognized
// organization can still read but never mutate.
func resolveRole(mspID string) Role {
	if role, ok := roleByMSP[mspID]; ok {
		return role
	}
	return RoleViewer
}
