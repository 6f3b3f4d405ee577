package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"coach-backend/internal/core"

	"gorm.io/gorm"
)

// IngestRecords appends dataset rows in order. Called once at startup when
// the table is empty; the table is read-only afterwards.
func IngestRecords(ctx context.Context, db *gorm.DB, records []core.RawRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]PerformanceRecord, len(records))
	for i, r := range records {
		rows[i] = PerformanceRecord{
			GPId:          r.GPId,
			ProductType:   r.ProductType,
			Attempts:      r.Attempts,
			Successes:     r.Successes,
			LastWeakTopic: r.LastWeakTopic,
		}
	}
	if err := db.WithContext(ctx).CreateInBatches(rows, 500).Error; err != nil {
		return fmt.Errorf("ingesting %d performance records: %w", len(records), err)
	}
	return nil
}

func CountRecords(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&PerformanceRecord{}).Count(&count).Error
	return count, err
}

// LatestPerformance returns the attempts/successes of the last dataset row
// matching the GP exactly and the product type case-insensitively. ok is
// false when no row matches or the matched counts do not parse as integers;
// neither case is an error, the caller just skips inference.
func LatestPerformance(ctx context.Context, db *gorm.DB, gpID, productType string) (attempts, successes int, ok bool, err error) {
	var record PerformanceRecord
	result := db.WithContext(ctx).
		Where("gp_id = ? AND LOWER(product_type) = ?", gpID, core.NormalizeProductType(productType)).
		Order("id DESC").
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, 0, false, nil
		}
		return 0, 0, false, fmt.Errorf("looking up performance for %s/%s: %w", gpID, productType, result.Error)
	}

	attempts, errA := strconv.Atoi(record.Attempts)
	successes, errS := strconv.Atoi(record.Successes)
	if errA != nil || errS != nil {
		return 0, 0, false, nil
	}
	return attempts, successes, true, nil
}

// AllRecords returns every ingested row in dataset order, for training from
// the database instead of the source CSV.
func AllRecords(ctx context.Context, db *gorm.DB) ([]core.RawRecord, error) {
	var rows []PerformanceRecord
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading performance records: %w", err)
	}
	records := make([]core.RawRecord, len(rows))
	for i, r := range rows {
		records[i] = core.RawRecord{
			GPId:          r.GPId,
			ProductType:   r.ProductType,
			Attempts:      r.Attempts,
			Successes:     r.Successes,
			LastWeakTopic: r.LastWeakTopic,
		}
	}
	return records, nil
}
