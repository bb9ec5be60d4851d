package donation

import (
	"strings"
	"unicode"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// FoodItem is a quantity of one food tied to a donation
type FoodItem struct {
	FoodID        string      `gorm:"column:food_id;type:varchar(10);primaryKey"`
	Name          string      `gorm:"type:varchar(100);not null"`
	Quantity      int         `gorm:"not null"`
	Unit          string      `gorm:"type:varchar(20);not null"`
	ExpireDate    shared.Date `gorm:"not null"`
	IsExpired     bool        `gorm:"not null;default:false"`
	IsClaimed     bool        `gorm:"not null;default:false"`
	IsDistributed bool        `gorm:"not null;default:false"`
	DonationID    string      `gorm:"column:donation_id;type:varchar(10);not null;index"`
	ChainID       *string     `gorm:"column:chain_id;type:varchar(10);index"`
}

// TableName returns the table name for GORM
func (FoodItem) TableName() string {
	return "fooditem"
}

// FoodItemChanges carries a partial update. Nil fields are left untouched.
type FoodItemChanges struct {
	Name          *string
	Quantity      *int
	Unit          *string
	ExpireDate    *shared.Date
	IsExpired     *bool
	IsClaimed     *bool
	IsDistributed *bool
	DonationID    *string
	ChainID       *string
}

// NewFoodItem validates and builds a food item. today anchors the expiry rule.
func NewFoodItem(id string, c FoodItemChanges, today shared.Date) (*FoodItem, error) {
	item := &FoodItem{FoodID: strings.TrimSpace(id)}

	var fe shared.FieldErrors
	if err := shared.ValidateKey("food_id", item.FoodID); err != nil {
		fe.Add("food_id", err.Error())
	}
	if c.Name == nil {
		fe.Add("name", "This field is required.")
	}
	if c.Quantity == nil {
		fe.Add("quantity", "This field is required.")
	}
	if c.Unit == nil {
		fe.Add("unit", "This field is required.")
	}
	if c.ExpireDate == nil || c.ExpireDate.IsZero() {
		fe.Add("expire_date", "This field is required.")
	}
	if c.DonationID == nil || strings.TrimSpace(*c.DonationID) == "" {
		fe.Add("donation", "This field is required.")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	item.assign(c)
	if err := item.validateFields(); err != nil {
		return nil, err
	}
	// An omitted is_expired is not checked on create; the stored default applies.
	if item.ExpireDate.Before(today) && c.IsExpired != nil && !*c.IsExpired {
		return nil, shared.NewValidationError("Expired items must have is_expired=True.")
	}
	return item, nil
}

// AutoClaim marks the item claimed when the change distributes it without saying
// anything about the claim flag.
func (f *FoodItem) AutoClaim(c *FoodItemChanges) {
	if c.IsDistributed != nil && *c.IsDistributed && c.IsClaimed == nil && !f.IsClaimed {
		claimed := true
		c.IsClaimed = &claimed
	}
}

// Apply validates a partial update against the current state and applies it.
// It reports whether the item became distributed by this change.
func (f *FoodItem) Apply(c FoodItemChanges, today shared.Date) (becameDistributed bool, err error) {
	if c.IsDistributed != nil && *c.IsDistributed {
		claimed := f.IsClaimed
		if c.IsClaimed != nil {
			claimed = *c.IsClaimed
		}
		if !claimed {
			return false, shared.NewValidationError("Cannot distribute item before it is claimed.")
		}
	}
	if c.IsClaimed != nil && !*c.IsClaimed && f.IsDistributed {
		return false, shared.NewValidationError("Cannot unclaim an item that has already been distributed.")
	}
	if c.ExpireDate != nil || c.IsExpired != nil {
		expire := f.ExpireDate
		if c.ExpireDate != nil {
			expire = *c.ExpireDate
		}
		expired := f.IsExpired
		if c.IsExpired != nil {
			expired = *c.IsExpired
		}
		if !expire.IsZero() && expire.Before(today) && !expired {
			return false, shared.NewValidationError("Expired items must have is_expired=True.")
		}
	}

	next := *f
	next.assign(c)
	if err := next.validateFields(); err != nil {
		return false, err
	}

	wasDistributed := f.IsDistributed
	*f = next
	return f.IsDistributed && !wasDistributed, nil
}

// DisplayID renders the key as F followed by its digits padded to four places.
// Keys without digits are returned unchanged.
func (f *FoodItem) DisplayID() string {
	return FormatFoodID(f.FoodID)
}

// FormatFoodID renders a food key for output
func FormatFoodID(id string) string {
	var digits strings.Builder
	for _, r := range id {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return id
	}
	d := digits.String()
	for len(d) < 4 {
		d = "0" + d
	}
	return "F" + d
}

// Deduct removes n units from the stock
func (f *FoodItem) Deduct(n int) {
	f.Quantity -= n
}

// Restore returns n units to the stock
func (f *FoodItem) Restore(n int) {
	f.Quantity += n
}

// MarkExpiredIfPast flips IsExpired when the expiry date is before today and
// reports whether anything changed.
func (f *FoodItem) MarkExpiredIfPast(today shared.Date) bool {
	if f.IsExpired || f.ExpireDate.IsZero() || !f.ExpireDate.Before(today) {
		return false
	}
	f.IsExpired = true
	return true
}

func (f *FoodItem) assign(c FoodItemChanges) {
	if c.Name != nil {
		f.Name = strings.TrimSpace(*c.Name)
	}
	if c.Quantity != nil {
		f.Quantity = *c.Quantity
	}
	if c.Unit != nil {
		f.Unit = strings.TrimSpace(*c.Unit)
	}
	if c.ExpireDate != nil {
		f.ExpireDate = *c.ExpireDate
	}
	if c.IsExpired != nil {
		f.IsExpired = *c.IsExpired
	}
	if c.IsClaimed != nil {
		f.IsClaimed = *c.IsClaimed
	}
	if c.IsDistributed != nil {
		f.IsDistributed = *c.IsDistributed
	}
	if c.DonationID != nil {
		f.DonationID = strings.TrimSpace(*c.DonationID)
	}
	if c.ChainID != nil {
		if v := strings.TrimSpace(*c.ChainID); v != "" {
			f.ChainID = &v
		} else {
			f.ChainID = nil
		}
	}
}

func (f *FoodItem) validateFields() error {
	var fe shared.FieldErrors
	shared.ValidateText(&fe, "name", f.Name, 100, true)
	shared.ValidateText(&fe, "unit", f.Unit, 20, true)
	if f.Quantity < 0 {
		fe.Add("quantity", "Quantity must not be negative.")
	}
	if f.DonationID == "" {
		fe.Add("donation", "This field may not be null.")
	}
	return fe.Err()
}
