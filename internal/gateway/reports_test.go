package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportBuilderHashesDocument(t *testing.T) {
	b := &ReportBuilder{}

	detail, err := b.Build("harvest_inspection", "moisture ok", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", detail.ReportHash)
	assert.Equal(t, "harvest_inspection", detail.ReportType)
	assert.Equal(t, "moisture ok", detail.Summary)
	assert.False(t, detail.IsVerified, "fresh reports start unverified")
	assert.Empty(t, detail.VerificationSource)

	other, err := b.Build("harvest_inspection", "moisture ok", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, detail.ReportHash, other.ReportHash, "hash depends only on content")
	assert.NotEqual(t, detail.ReportID, other.ReportID, "every report gets a fresh id")
}

func TestMarkVerified(t *testing.T) {
	b := &ReportBuilder{}
	detail, err := b.Build("quality_inspection", "grade A", strings.NewReader("doc"))
	require.NoError(t, err)

	b.MarkVerified(detail, "ProvincialLab")
	assert.True(t, detail.IsVerified)
	assert.Equal(t, "ProvincialLab", detail.VerificationSource)
}
