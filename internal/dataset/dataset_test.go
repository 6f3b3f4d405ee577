package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"coach-backend/internal/core"
	"coach-backend/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gps_performance.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRecords(t *testing.T) {
	path := writeCSV(t, `gp_id,product_type,attempts,successes,last_weak_topic
GP001,loan,10,2,loan_closing_technique
GP001,loan,12,5,loan_negotiation_skills
GP002,Insurance,8,3,insurance_objection_handling
`)

	records, err := dataset.ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// File order is preserved; values stay raw.
	assert.Equal(t, core.RawRecord{
		GPId:          "GP001",
		ProductType:   "loan",
		Attempts:      "10",
		Successes:     "2",
		LastWeakTopic: "loan_closing_technique",
	}, records[0])
	assert.Equal(t, "Insurance", records[2].ProductType)
}

func TestReadRecordsExtraColumnsIgnored(t *testing.T) {
	path := writeCSV(t, `region,gp_id,product_type,attempts,successes,last_weak_topic
north,GP001,loan,10,2,loan_closing_technique
`)

	records, err := dataset.ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "GP001", records[0].GPId)
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := dataset.ReadRecords(filepath.Join(t.TempDir(), "missing.csv"))
	var dataErr *core.DataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestReadRecordsMissingColumn(t *testing.T) {
	path := writeCSV(t, `gp_id,product_type,attempts,successes
GP001,loan,10,2
`)

	_, err := dataset.ReadRecords(path)
	var dataErr *core.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Contains(t, dataErr.Reason, "last_weak_topic")
}

func TestReadRecordsEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	_, err := dataset.ReadRecords(path)
	var dataErr *core.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Contains(t, dataErr.Reason, "empty")
}
