package identity

// Donor links a user to the restaurant they donate for
type Donor struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"column:user_id;type:varchar(10);not null;uniqueIndex"`
	RestaurantID string `gorm:"column:restaurant_id;type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (Donor) TableName() string {
	return "donor"
}

// DeliveryStaff marks a user as a driver
type DeliveryStaff struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"column:user_id;type:varchar(10);not null;uniqueIndex"`
	AssignedArea string `gorm:"type:varchar(200);not null;default:''"`
	IsAvailable  bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryStaff) TableName() string {
	return "delivery_staff"
}

// Recipient links a user to a community and the request they submitted
type Recipient struct {
	ID                uint    `gorm:"primaryKey;autoIncrement"`
	UserID            string  `gorm:"column:user_id;type:varchar(10);not null;uniqueIndex"`
	Address           string  `gorm:"type:varchar(300);not null;default:''"`
	CommunityID       *string `gorm:"column:community_id;type:varchar(10);index"`
	DonationRequestID *string `gorm:"column:donation_request_id;type:varchar(10);index"`
}

// TableName returns the table name for GORM
func (Recipient) TableName() string {
	return "recipient"
}

// Admin marks a user as an administrator
type Admin struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	UserID string `gorm:"column:user_id;type:varchar(10);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Admin) TableName() string {
	return "admin"
}

// StaffMember is a driver joined with their account
type StaffMember struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Fname        string `json:"fname"`
	Lname        string `json:"lname"`
	Phone        string `json:"phone"`
	AssignedArea string `json:"assigned_area"`
	IsAvailable  bool   `json:"is_available"`
}
