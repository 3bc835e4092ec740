package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/LewyHua/RiceTrace-sub000/chaincode"
)

// ReportBuilder turns an uploaded evidence document into the ReportDetail
// payload callers embed into create/advance transactions. Only the hash and
// an issued id are computed here; verification is a human workflow that
// happens elsewhere and is recorded via MarkVerified.
type ReportBuilder struct{}

// Build hashes the uploaded document and issues a fresh report id. The
// returned detail is unverified until a reviewer signs off on it.
func (b *ReportBuilder) Build(reportType, summary string, doc io.Reader) (*chaincode.ReportDetail, error) {
	h := sha256.New()
	if _, err := io.Copy(h, doc); err != nil {
		return nil, fmt.Errorf("failed to hash report document: %w", err)
	}
	return &chaincode.ReportDetail{
		ReportID:   uuid.NewString(),
		ReportType: reportType,
		ReportHash: hex.EncodeToString(h.Sum(nil)),
		Summary:    summary,
	}, nil
}

// MarkVerified records the reviewing source on a report detail.
func (b *ReportBuilder) MarkVerified(detail *chaincode.ReportDetail, source string) {
	detail.IsVerified = true
	detail.VerificationSource = source
}
