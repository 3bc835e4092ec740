/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/LewyHua/RiceTrace-sub000/chaincode"
)

func main() {
	cc, err := contractapi.NewChaincode(&chaincode.TraceContract{})
	if err != nil {
		fmt.Printf("Error creating ricetrace chaincode: %v\n", err)
		return
	}

	if err := cc.Start(); err != nil {
		fmt.Printf("Error starting ricetrace chaincode: %v\n", err)
	}
}
