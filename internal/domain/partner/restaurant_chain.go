package partner

import (
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// RestaurantChain groups restaurants under a brand name
type RestaurantChain struct {
	ChainID   string `gorm:"column:chain_id;type:varchar(10);primaryKey"`
	ChainName string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (RestaurantChain) TableName() string {
	return "restaurant_chain"
}

// NewRestaurantChain creates a chain. An empty id is left for the repository to
// assign from the CHA sequence.
func NewRestaurantChain(id, name string) (*RestaurantChain, error) {
	c := &RestaurantChain{ChainID: strings.TrimSpace(id)}
	if c.ChainID != "" {
		if err := shared.ValidateKey("chain_id", c.ChainID); err != nil {
			return nil, err
		}
	}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename changes the chain name
func (c *RestaurantChain) Rename(name string) error {
	var fe shared.FieldErrors
	name = strings.TrimSpace(name)
	shared.ValidateText(&fe, "chain_name", name, MaxNameLength, true)
	if err := fe.Err(); err != nil {
		return err
	}
	c.ChainName = name
	return nil
}
