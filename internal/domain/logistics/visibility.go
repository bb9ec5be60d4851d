package logistics

import "github.com/NapatKulnarong/ReMeals/internal/domain/shared"

// Scope restricts which deliveries a caller can list
type Scope struct {
	All        bool
	None       bool
	AssignedTo string
	// DonorRestaurantIDs admits donation deliveries of donations from these restaurants
	DonorRestaurantIDs []string
	// CommunityIDs admits distribution deliveries to these communities
	CommunityIDs []string
}

// ScopeFor derives the visibility of actor. Admins see everything, drivers see
// deliveries assigned to them, and other users see pickups from the restaurants
// they donate for plus distributions to the communities they requested food for.
// Anonymous callers see nothing.
func ScopeFor(actor shared.Actor, donorRestaurantIDs, requestedCommunityIDs []string) Scope {
	switch {
	case actor.IsAdmin:
		return Scope{All: true}
	case actor.IsDriver && actor.UserID != "":
		return Scope{AssignedTo: actor.UserID}
	case actor.UserID != "":
		if len(donorRestaurantIDs) == 0 && len(requestedCommunityIDs) == 0 {
			return Scope{None: true}
		}
		return Scope{DonorRestaurantIDs: donorRestaurantIDs, CommunityIDs: requestedCommunityIDs}
	}
	return Scope{None: true}
}

// DeliveryFilter narrows delivery lists
type DeliveryFilter struct {
	DeliveryType string
	Scope        Scope
}
