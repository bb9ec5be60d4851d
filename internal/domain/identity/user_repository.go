package identity

import "context"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by key
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByID checks whether a user key exists
	ExistsByID(ctx context.Context, id string) (bool, error)

	// ExistsByUsername checks for a taken username, ignoring excludeID
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)

	// ExistsByEmail checks for a taken email, ignoring excludeID
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)

	// Create inserts a new user
	Create(ctx context.Context, user *User) error

	// Save updates an existing user
	Save(ctx context.Context, user *User) error
}

// RoleRepository defines the interface for the role tables
type RoleRepository interface {
	// DonorRestaurantIDs lists the restaurants the user donates for
	DonorRestaurantIDs(ctx context.Context, userID string) ([]string, error)

	// RequestedCommunityIDs lists communities of the requests linked to the user's
	// recipient profile
	RequestedCommunityIDs(ctx context.Context, userID string) ([]string, error)

	// FindRecipient returns the user's recipient profile
	FindRecipient(ctx context.Context, userID string) (*Recipient, error)

	// ListDeliveryStaff lists drivers with their account details
	ListDeliveryStaff(ctx context.Context, onlyAvailable bool) ([]StaffMember, error)

	// SaveDonor creates or updates a donor profile
	SaveDonor(ctx context.Context, donor *Donor) error

	// SaveRecipient creates or updates a recipient profile
	SaveRecipient(ctx context.Context, recipient *Recipient) error

	// SaveDeliveryStaff creates or updates a driver profile
	SaveDeliveryStaff(ctx context.Context, staff *DeliveryStaff) error

	// SaveAdmin creates an admin profile
	SaveAdmin(ctx context.Context, admin *Admin) error
}
