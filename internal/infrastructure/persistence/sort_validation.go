package persistence

import (
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC, returning
// fallback for anything else.
func ValidateSortOrder(orderDir, fallback string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return fallback
}

// ValidateSortField returns sortField when whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// paginate applies the ordering and page window of filter. Lists default to
// ascending primary key order.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, pk string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, pk)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir, "ASC"))
	if field != pk {
		query = query.Order(pk + " ASC")
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// Allowed sort fields per table
var (
	WarehouseSortFields = map[string]bool{
		"warehouse_id": true, "address": true, "capacity": true, "stored_date": true, "exp_date": true,
	}
	CommunitySortFields = map[string]bool{
		"community_id": true, "name": true, "received_time": true, "population": true, "warehouse_id": true,
	}
	RestaurantSortFields = map[string]bool{
		"restaurant_id": true, "name": true, "branch_name": true, "is_chain": true,
	}
	ChainSortFields = map[string]bool{
		"chain_id": true, "chain_name": true,
	}
	DonationSortFields = map[string]bool{
		"donation_id": true, "donated_at": true, "status": true, "restaurant_id": true,
	}
	FoodItemSortFields = map[string]bool{
		"food_id": true, "name": true, "quantity": true, "expire_date": true, "donation_id": true,
	}
	ImpactSortFields = map[string]bool{
		"impact_id": true, "impact_date": true, "meals_saved": true, "food_id": true,
	}
	DeliverySortFields = map[string]bool{
		"delivery_id": true, "pickup_time": true, "dropoff_time": true, "status": true, "delivery_type": true,
	}
)
