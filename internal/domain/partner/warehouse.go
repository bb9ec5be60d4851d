package partner

import (
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// Field limits shared by the partner entities
const (
	MaxWarehouseAddr   = 100
	MaxNameLength      = 100
	MaxAddressLength   = 300
	MaxBranchLength    = 100
	DefaultWarehouseID = "WH_DEFAULT"
)

// Warehouse is a storage site that receives donations and supplies communities
type Warehouse struct {
	WarehouseID string      `gorm:"column:warehouse_id;type:varchar(10);primaryKey"`
	Address     string      `gorm:"type:varchar(100);not null"`
	Capacity    float64     `gorm:"not null"`
	StoredDate  shared.Date `gorm:"not null"`
	ExpDate     shared.Date `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouse"
}

// NewWarehouse creates a warehouse after validating its fields
func NewWarehouse(id, address string, capacity float64, stored, exp shared.Date) (*Warehouse, error) {
	w := &Warehouse{WarehouseID: strings.TrimSpace(id)}
	if err := shared.ValidateKey("warehouse_id", w.WarehouseID); err != nil {
		return nil, err
	}
	if err := w.Update(address, capacity, stored, exp); err != nil {
		return nil, err
	}
	return w, nil
}

// NewDefaultWarehouse builds the fallback warehouse used when a community is
// created implicitly and no warehouse exists yet.
func NewDefaultWarehouse(today shared.Date) *Warehouse {
	return &Warehouse{
		WarehouseID: DefaultWarehouseID,
		Address:     "Default Warehouse",
		Capacity:    1000,
		StoredDate:  today,
		ExpDate:     today.AddDays(365),
	}
}

// Update replaces the mutable fields
func (w *Warehouse) Update(address string, capacity float64, stored, exp shared.Date) error {
	var fe shared.FieldErrors
	address = strings.TrimSpace(address)
	shared.ValidateText(&fe, "address", address, MaxWarehouseAddr, true)
	if capacity < 0 {
		fe.Add("capacity", "Capacity must not be negative.")
	}
	if stored.IsZero() {
		fe.Add("stored_date", "This field is required.")
	}
	if exp.IsZero() {
		fe.Add("exp_date", "This field is required.")
	}
	if !stored.IsZero() && !exp.IsZero() && exp.Before(stored) {
		fe.Add("exp_date", "Expiry date cannot be before the stored date.")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	w.Address = address
	w.Capacity = capacity
	w.StoredDate = stored
	w.ExpDate = exp
	return nil
}
