package partner

import (
	"strings"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// Community is a recipient area served from a warehouse
type Community struct {
	CommunityID  string    `gorm:"column:community_id;type:varchar(10);primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Address      string    `gorm:"type:varchar(300);not null"`
	ReceivedTime time.Time `gorm:"not null"`
	Population   int       `gorm:"not null"`
	WarehouseID  string    `gorm:"column:warehouse_id;type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (Community) TableName() string {
	return "community"
}

// NewCommunity creates a community after validating its fields
func NewCommunity(id, name, address string, received time.Time, population int, warehouseID string) (*Community, error) {
	c := &Community{CommunityID: strings.TrimSpace(id)}
	if err := shared.ValidateKey("community_id", c.CommunityID); err != nil {
		return nil, err
	}
	if err := c.Update(name, address, received, population, warehouseID); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the mutable fields
func (c *Community) Update(name, address string, received time.Time, population int, warehouseID string) error {
	var fe shared.FieldErrors
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	warehouseID = strings.TrimSpace(warehouseID)

	shared.ValidateText(&fe, "name", name, MaxNameLength, true)
	shared.ValidateText(&fe, "address", address, MaxAddressLength, true)
	if received.IsZero() {
		fe.Add("received_time", "This field is required.")
	}
	if population < 0 {
		fe.Add("population", "Population must not be negative.")
	}
	if warehouseID == "" {
		fe.Add("warehouse_id", "This field is required.")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	c.Name = name
	c.Address = address
	c.ReceivedTime = received
	c.Population = population
	c.WarehouseID = warehouseID
	return nil
}
