package logistics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)

// ParseQuantity extracts the leading number of a free-text quantity such as
// "15 kg" or "25.67 g" and rounds it half to even.
func ParseQuantity(raw string) (int, error) {
	match := leadingNumber.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return 0, shared.NewFieldError("delivery_quantity",
			fmt.Sprintf("Invalid quantity format: '%s'. Please include a number.", raw))
	}
	d, err := decimal.NewFromString(match[1])
	if err != nil {
		return 0, shared.NewFieldError("delivery_quantity",
			fmt.Sprintf("Invalid quantity format: '%s'. Please include a number.", raw))
	}
	return int(d.RoundBank(0).IntPart()), nil
}

// StockMove is the stock change one food item needs after a delivery write.
// Returned units go back to the item before Requested units are taken.
type StockMove struct {
	FoodID    string
	Requested int
	Returned  int
}

// Delta is the net change applied to the item's quantity
func (m StockMove) Delta() int {
	return m.Returned - m.Requested
}

// ExceedsError reports a request larger than the stock available to it
func ExceedsError(requested, available int, name string) error {
	return shared.NewFieldError("delivery_quantity",
		fmt.Sprintf("Quantity (%d) exceeds available quantity (%d) for %s", requested, available, name))
}

// Reconcile computes the stock moves implied by writing after over before.
// before is nil for a new delivery.
//
// A new delivery takes its quantity from its item. On update, a changed item
// gets its old quantity back and the new item is charged; the same item is
// charged only the difference; a cleared item gets its quantity back.
func Reconcile(before, after *Delivery) ([]StockMove, error) {
	newQty, err := quantityOf(after)
	if err != nil {
		return nil, err
	}
	if before == nil {
		if after.FoodID == nil || after.DeliveryQuantity == nil {
			return nil, nil
		}
		return []StockMove{{FoodID: *after.FoodID, Requested: newQty}}, nil
	}

	// Stored quantities were validated when written; an unparsable legacy value
	// counts as zero.
	oldQty, _ := quantityOf(before)

	oldFood := before.FoodID
	newFood := after.FoodID
	switch {
	case oldFood == nil && newFood == nil:
		return nil, nil
	case oldFood != nil && newFood != nil && *oldFood == *newFood:
		if oldQty == newQty {
			return nil, nil
		}
		return []StockMove{{FoodID: *newFood, Requested: newQty, Returned: oldQty}}, nil
	}

	var moves []StockMove
	if oldFood != nil && oldQty > 0 {
		moves = append(moves, StockMove{FoodID: *oldFood, Returned: oldQty})
	}
	if newFood != nil && newQty > 0 {
		moves = append(moves, StockMove{FoodID: *newFood, Requested: newQty})
	}
	return moves, nil
}

func quantityOf(d *Delivery) (int, error) {
	if d == nil || d.DeliveryQuantity == nil || d.FoodID == nil {
		return 0, nil
	}
	return ParseQuantity(*d.DeliveryQuantity)
}
