package partner

import (
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DefaultBranchName is used when a manually entered restaurant has no branch
const DefaultBranchName = "Main Location"

// Restaurant is a donor site. A branch may point at the head restaurant of its
// chain through ChainID, and at the named chain record through RestaurantChainID.
type Restaurant struct {
	RestaurantID      string  `gorm:"column:restaurant_id;type:varchar(10);primaryKey"`
	Address           string  `gorm:"type:varchar(300);not null"`
	Name              string  `gorm:"type:varchar(100);not null"`
	BranchName        string  `gorm:"type:varchar(100);not null;default:''"`
	IsChain           bool    `gorm:"not null;default:false"`
	ChainID           *string `gorm:"column:chain_id;type:varchar(10);index"`
	RestaurantChainID *string `gorm:"column:restaurant_chain_id;type:varchar(10);index"`
}

// TableName returns the table name for GORM
func (Restaurant) TableName() string {
	return "restaurant"
}

// RestaurantFields carries the editable restaurant attributes
type RestaurantFields struct {
	Name       string
	BranchName string
	Address    string
	IsChain    bool
	ChainID    *string
}

// NewRestaurant creates a restaurant after validating its fields
func NewRestaurant(id string, fields RestaurantFields) (*Restaurant, error) {
	r := &Restaurant{RestaurantID: strings.TrimSpace(id)}
	if err := shared.ValidateKey("restaurant_id", r.RestaurantID); err != nil {
		return nil, err
	}
	if err := r.Update(fields); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the mutable fields
func (r *Restaurant) Update(fields RestaurantFields) error {
	var fe shared.FieldErrors
	name := strings.TrimSpace(fields.Name)
	branch := strings.TrimSpace(fields.BranchName)
	address := strings.TrimSpace(fields.Address)

	shared.ValidateText(&fe, "name", name, MaxNameLength, true)
	shared.ValidateText(&fe, "branch_name", branch, MaxBranchLength, false)
	shared.ValidateText(&fe, "address", address, MaxAddressLength, true)

	chainID := normalizeOptional(fields.ChainID)
	if chainID != nil && *chainID == r.RestaurantID {
		fe.Add("chain", "A restaurant cannot be its own chain.")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	r.Name = name
	r.BranchName = branch
	r.Address = address
	r.IsChain = fields.IsChain
	r.ChainID = chainID
	return nil
}

// NewManualRestaurant builds a restaurant typed in by a donor. The branch falls
// back to DefaultBranchName and the address falls back to the branch, then the name.
func NewManualRestaurant(id, name, branch, address string, chainID *string) *Restaurant {
	name = strings.TrimSpace(name)
	rawBranch := strings.TrimSpace(branch)
	address = strings.TrimSpace(address)

	branchName := rawBranch
	if branchName == "" {
		branchName = DefaultBranchName
	}
	if address == "" {
		if rawBranch != "" {
			address = rawBranch
		} else {
			address = name
		}
	}
	return &Restaurant{
		RestaurantID:      id,
		Name:              name,
		BranchName:        branchName,
		Address:           address,
		IsChain:           rawBranch != "",
		RestaurantChainID: chainID,
	}
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
