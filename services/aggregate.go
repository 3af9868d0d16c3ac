package services

import (
	"context"
	"fmt"
	"math"

	"storerating/repository"
)

// Aggregate ค่าเฉลี่ยคะแนนของร้าน
// Average == nil หมายถึงยังไม่มีใครให้คะแนน (ไม่ใช่ 0)
type Aggregate struct {
	Average *float64
	Total   int64
}

func (a Aggregate) HasRatings() bool { return a.Average != nil }

func newAggregate(avg *float64, total int64) Aggregate {
	if avg == nil || total == 0 {
		return Aggregate{}
	}
	v := roundRating(*avg)
	return Aggregate{Average: &v, Total: total}
}

// storeAggregate ทุกที่ที่แสดงค่าเฉลี่ยของร้านเดียวผ่านตรงนี้
func storeAggregate(ctx context.Context, ratings *repository.RatingRepository, storeID uint) (Aggregate, error) {
	row, err := ratings.AggregateForStore(ctx, storeID)
	if err != nil {
		return Aggregate{}, fmt.Errorf("aggregate store %d: %w", storeID, err)
	}
	return newAggregate(row.Average, row.Total), nil
}

// ปัดเป็นทศนิยม 2 ตำแหน่ง
func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
