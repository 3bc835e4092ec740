/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Seed populates a small fixed set of example batches and products so a fresh
// channel has data to demo against. It writes unconditionally: reseeding
// overwrites the sample records by key, but still routes every batch through
// the history engine so seeded records satisfy the genesis-event invariant.
// Producer only.
func (c *TraceContract) Seed(ctx contractapi.TransactionContextInterface) error {
	if err := checkPermission(ctx, opSeed); err != nil {
		return err
	}
	ts, err := txTime(ctx)
	if err != nil {
		return err
	}
	store := newLedgerStore(ctx.GetStub())

	samples := []struct {
		batch  Batch
		owner  string
		step   string
		report ReportDetail
	}{
		{
			batch: Batch{BatchID: "batch_001", Origin: "Wuchang, Heilongjiang", Variety: "Daohuaxiang", HarvestDate: "2024-09-28"},
			owner: "WuchangFarmCoop",
			step:  "Harvested",
			report: ReportDetail{
				ReportID:           "seed-report-001",
				ReportType:         "harvest_inspection",
				ReportHash:         "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
				Summary:            "Moisture 14.2%, no impurities found",
				IsVerified:         true,
				VerificationSource: "HeilongjiangGrainAuthority",
			},
		},
		{
			batch: Batch{BatchID: "batch_002", Origin: "Panjin, Liaoning", Variety: "Yanfeng 47", HarvestDate: "2024-10-02"},
			owner: "PanjinFarmCoop",
			step:  "Harvested",
			report: ReportDetail{
				ReportID:           "seed-report-002",
				ReportType:         "harvest_inspection",
				ReportHash:         "fcde2b2edba56bf408601fb721fe9b5c338d10ee429ea04fae5511b68fbf8fb9",
				Summary:            "Moisture 13.8%, trace chalkiness within limits",
				IsVerified:         true,
				VerificationSource: "LiaoningGrainAuthority",
			},
		},
	}
	for _, s := range samples {
		batch := s.batch
		appendEvent(&batch, ts, "", s.owner, s.step, s.report)
		if err := store.PutBatch(&batch); err != nil {
			return err
		}
	}

	return store.PutProduct(&Product{
		ProductID:   "product_001",
		BatchID:     "batch_001",
		PackageDate: "2024-10-20",
		Owner:       "NortheastRiceMill",
	})
}
