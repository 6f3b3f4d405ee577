package database_test

import (
	"context"
	"testing"

	"coach-backend/internal/core"
	"coach-backend/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func createDB(t *testing.T, records ...core.RawRecord) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.GetMigrator(db).Migrate())
	require.NoError(t, database.IngestRecords(context.Background(), db, records))

	return db
}

func record(gpID, product, attempts, successes, topic string) core.RawRecord {
	return core.RawRecord{GPId: gpID, ProductType: product, Attempts: attempts, Successes: successes, LastWeakTopic: topic}
}

func TestLatestPerformance(t *testing.T) {
	db := createDB(t,
		record("GP001", "loan", "10", "2", "loan_closing_technique"),
		record("GP001", "loan", "14", "6", "loan_negotiation_skills"),
		record("GP001", "insurance", "5", "1", "insurance_objection_handling"),
	)
	ctx := context.Background()

	// Last matching dataset row wins.
	attempts, successes, ok, err := database.LatestPerformance(ctx, db, "GP001", "loan")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 14, attempts)
	assert.Equal(t, 6, successes)
}

func TestLatestPerformanceProductCaseInsensitive(t *testing.T) {
	db := createDB(t, record("GP001", "Loan", "10", "2", "loan_closing_technique"))
	ctx := context.Background()

	attempts, successes, ok, err := database.LatestPerformance(ctx, db, "GP001", "LOAN")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, attempts)
	assert.Equal(t, 2, successes)
}

func TestLatestPerformanceGPIdExactMatch(t *testing.T) {
	db := createDB(t, record("GP001", "loan", "10", "2", "loan_closing_technique"))

	_, _, ok, err := database.LatestPerformance(context.Background(), db, "gp001", "loan")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestPerformanceNoMatch(t *testing.T) {
	db := createDB(t, record("GP001", "loan", "10", "2", "loan_closing_technique"))

	_, _, ok, err := database.LatestPerformance(context.Background(), db, "GP_unknown", "loan")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestPerformanceBadNumbersAreAMiss(t *testing.T) {
	db := createDB(t, record("GP001", "loan", "ten", "2", "loan_closing_technique"))

	// Unparseable counts degrade to "no data", not an error.
	_, _, ok, err := database.LatestPerformance(context.Background(), db, "GP001", "loan")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllRecordsPreservesOrder(t *testing.T) {
	db := createDB(t,
		record("GP001", "loan", "10", "2", "a"),
		record("GP002", "loan", "11", "3", "b"),
		record("GP003", "loan", "12", "4", "c"),
	)

	records, err := database.AllRecords(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "GP001", records[0].GPId)
	assert.Equal(t, "GP003", records[2].GPId)
}

func TestCountRecords(t *testing.T) {
	db := createDB(t, record("GP001", "loan", "10", "2", "a"))

	count, err := database.CountRecords(context.Background(), db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
