package identity

import (
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// SignupRequest is the registration form. Required fields are checked by the
// service so the first missing one is reported in a fixed order.
type SignupRequest struct {
	Username string `json:"username"`
	Fname    string `json:"fname"`
	Lname    string `json:"lname"`
	Bod      string `json:"bod"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignupRequest) fields() identity.SignupFields {
	return identity.SignupFields{
		Username: r.Username,
		Fname:    r.Fname,
		Lname:    r.Lname,
		Bod:      r.Bod,
		Phone:    r.Phone,
		Email:    r.Email,
		Password: r.Password,
	}
}

// MessageResponse carries a plain confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginRequest accepts either the email or the username as identifier
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message         string `json:"message"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	UserID          string `json:"user_id"`
	IsAdmin         bool   `json:"is_admin"`
	IsDeliveryStaff bool   `json:"is_delivery_staff"`
	Token           string `json:"token"`
}

// ProfileRequest is a partial profile update
type ProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,max=20"`
	Fname    *string `json:"fname" binding:"omitempty,max=100"`
	Lname    *string `json:"lname" binding:"omitempty,max=100"`
	Bod      *string `json:"bod"`
	Phone    *string `json:"phone" binding:"omitempty,max=10"`
	Email    *string `json:"email" binding:"omitempty,max=100"`
	Password *string `json:"password"`
}

func (r ProfileRequest) changes() identity.ProfileChanges {
	return identity.ProfileChanges{
		Username: r.Username,
		Fname:    r.Fname,
		Lname:    r.Lname,
		Bod:      r.Bod,
		Phone:    r.Phone,
		Email:    r.Email,
		Password: r.Password,
	}
}

func (r ProfileRequest) empty() bool {
	return r.Username == nil && r.Fname == nil && r.Lname == nil && r.Bod == nil &&
		r.Phone == nil && r.Email == nil && r.Password == nil
}

// ProfileResponse represents the current user's account
type ProfileResponse struct {
	UserID          string       `json:"user_id"`
	Username        string       `json:"username"`
	Fname           string       `json:"fname"`
	Lname           string       `json:"lname"`
	Bod             *shared.Date `json:"bod"`
	Phone           string       `json:"phone"`
	Email           string       `json:"email"`
	IsAdmin         bool         `json:"is_admin"`
	IsDonor         bool         `json:"is_donor"`
	IsRecipient     bool         `json:"is_recipient"`
	IsDeliveryStaff bool         `json:"is_delivery_staff"`
}

// ToProfileResponse converts a domain User to ProfileResponse
func ToProfileResponse(u *identity.User) ProfileResponse {
	return ProfileResponse{
		UserID:          u.UserID,
		Username:        u.Username,
		Fname:           u.Fname,
		Lname:           u.Lname,
		Bod:             u.Bod,
		Phone:           u.Phone,
		Email:           u.Email,
		IsAdmin:         u.IsAdmin,
		IsDonor:         u.IsDonor,
		IsRecipient:     u.IsRecipient,
		IsDeliveryStaff: u.IsDeliveryStaff,
	}
}

// StaffListFilter narrows the driver list
type StaffListFilter struct {
	Available string `form:"available"`
}
