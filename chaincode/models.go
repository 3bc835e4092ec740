/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

// ReportDetail is externally verified evidence attached to a lifecycle event.
// It is produced by the report-verification subsystem and stored verbatim;
// the contract never recomputes the hash or the verification flag.
type ReportDetail struct {
	ReportID           string `json:"reportId"`
	ReportType         string `json:"reportType"`
	ReportHash         string `json:"reportHash"`
	Summary            string `json:"summary"`
	IsVerified         bool   `json:"isVerified"`
	VerificationSource string `json:"verificationSource"`
	Notes              string `json:"notes,omitempty" metadata:",optional"`
}

// TraceEvent is one historical transition of a batch. From is empty for the
// genesis event. Timestamp comes from the transaction's commit time so that
// every endorsing peer records the same value.
type TraceEvent struct {
	Timestamp string       `json:"timestamp"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Step      string       `json:"step"`
	Report    ReportDetail `json:"report"`
}

// Batch is the central traceable unit: a quantity of rice harvested together.
// CurrentOwner and CurrentState always mirror the To/Step of the latest
// history event; nothing may set them independently of appending an event.
type Batch struct {
	BatchID      string       `json:"batchId"`
	Origin       string       `json:"origin"`
	Variety      string       `json:"variety"`
	HarvestDate  string       `json:"harvestDate"`
	CurrentOwner string       `json:"currentOwner"`
	CurrentState string       `json:"currentState"`
	History      []TraceEvent `json:"history"`
}

// Product is a packaged unit derived from exactly one batch. Immutable after
// creation.
type Product struct {
	ProductID   string `json:"productId"`
	BatchID     string `json:"batchId"`
	PackageDate string `json:"packageDate"`
	Owner       string `json:"owner"`
}

// ProductWithBatch joins a product with the batch it was packaged from.
type ProductWithBatch struct {
	Product Product `json:"product"`
	Batch   Batch   `json:"batch"`
}

// BatchStatus is a derived summary of a batch's current position in the
// lifecycle, cheap enough to serve on consumer-facing lookups.
type BatchStatus struct {
	BatchID       string `json:"batchId"`
	CurrentOwner  string `json:"currentOwner"`
	CurrentState  string `json:"currentState"`
	Variety       string `json:"variety"`
	Origin        string `json:"origin"`
	HarvestDate   string `json:"harvestDate"`
	EventCount    int    `json:"eventCount"`
	LastEventTime string `json:"lastEventTime"`
}
