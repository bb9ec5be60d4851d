package donation

import (
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Linear coefficients applied to a distributed item's quantity
var (
	MealFactor   = decimal.RequireFromString("0.5")
	WeightFactor = decimal.RequireFromString("0.2")
	CO2Factor    = decimal.RequireFromString("2.5")
)

// ImpactRecord is the impact snapshot taken when a food item is distributed
type ImpactRecord struct {
	ImpactID      string      `gorm:"column:impact_id;type:varchar(10);primaryKey"`
	MealsSaved    float64     `gorm:"not null"`
	WeightSavedKg float64     `gorm:"column:weight_saved_kg;not null"`
	CO2ReducedKg  float64     `gorm:"column:co2_reduced_kg;not null"`
	ImpactDate    shared.Date `gorm:"not null"`
	FoodID        string      `gorm:"column:food_id;type:varchar(10);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ImpactRecord) TableName() string {
	return "impact_record"
}

// NewImpactRecord derives the impact of distributing item on the given day.
// The key is assigned by the repository.
func NewImpactRecord(item *FoodItem, day shared.Date) *ImpactRecord {
	quantity := decimal.NewFromInt(int64(item.Quantity))
	weight := quantity.Mul(WeightFactor)
	return &ImpactRecord{
		MealsSaved:    quantity.Mul(MealFactor).InexactFloat64(),
		WeightSavedKg: weight.InexactFloat64(),
		CO2ReducedKg:  weight.Mul(CO2Factor).InexactFloat64(),
		ImpactDate:    day,
		FoodID:        item.FoodID,
	}
}

// ImpactSummary aggregates impact records
type ImpactSummary struct {
	Records       int64   `json:"records"`
	MealsSaved    float64 `json:"meals_saved"`
	WeightSavedKg float64 `json:"weight_saved_kg"`
	CO2ReducedKg  float64 `json:"co2_reduced_kg"`
}
