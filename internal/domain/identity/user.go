package identity

import (
	"strings"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used when hashing passwords
var PasswordCost = 12

// Accepted birth date layouts, tried in order
var birthDateLayouts = []string{"02/01/2006", "2006-01-02"}

// User is a registered account. Role membership is recorded both as flags and
// in the role tables.
type User struct {
	UserID          string       `gorm:"column:user_id;type:varchar(10);primaryKey"`
	Username        string       `gorm:"type:varchar(20);not null;uniqueIndex"`
	Fname           string       `gorm:"type:varchar(100);not null"`
	Lname           string       `gorm:"type:varchar(100);not null"`
	Bod             *shared.Date `gorm:"column:bod"`
	Phone           string       `gorm:"type:varchar(10);not null"`
	Email           string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash    string       `gorm:"column:password;type:varchar(100);not null"`
	IsAdmin         bool         `gorm:"not null;default:false"`
	IsDonor         bool         `gorm:"not null;default:false"`
	IsRecipient     bool         `gorm:"not null;default:false"`
	IsDeliveryStaff bool         `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// SignupFields is the data collected at registration
type SignupFields struct {
	Username string
	Fname    string
	Lname    string
	Bod      string
	Phone    string
	Email    string
	Password string
}

// RequiredSignupFields lists the mandatory signup fields in reporting order
var RequiredSignupFields = []string{"username", "fname", "lname", "phone", "email", "password"}

// Get returns the named signup field
func (f SignupFields) Get(name string) string {
	switch name {
	case "username":
		return f.Username
	case "fname":
		return f.Fname
	case "lname":
		return f.Lname
	case "bod":
		return f.Bod
	case "phone":
		return f.Phone
	case "email":
		return f.Email
	case "password":
		return f.Password
	}
	return ""
}

// CheckRequired returns an error naming the first missing mandatory field
func (f SignupFields) CheckRequired() error {
	for _, name := range RequiredSignupFields {
		if f.Get(name) == "" {
			return shared.NewFieldError(name, name+" is required")
		}
	}
	return nil
}

// NewUser registers a user with a generated key and a hashed password
func NewUser(f SignupFields) (*User, error) {
	if err := f.CheckRequired(); err != nil {
		return nil, err
	}
	bod, err := ParseBirthDate(f.Bod)
	if err != nil {
		return nil, err
	}

	u := &User{
		UserID:   GenerateUserID(),
		Username: f.Username,
		Fname:    f.Fname,
		Lname:    f.Lname,
		Bod:      bod,
		Phone:    f.Phone,
		Email:    f.Email,
	}
	if err := u.validateFields(); err != nil {
		return nil, err
	}
	if err := u.SetPassword(f.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// GenerateUserID returns the first ten hex digits of a random UUID, upper-cased
func GenerateUserID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// ParseBirthDate accepts DD/MM/YYYY or YYYY-MM-DD. An empty value yields nil.
func ParseBirthDate(raw string) (*shared.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := shared.NewDate(t)
			return &d, nil
		}
	}
	return nil, shared.NewFieldError("bod", "Invalid bod format")
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	if password == "" {
		return shared.NewFieldError("password", "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ProfileChanges carries a partial profile update
type ProfileChanges struct {
	Username *string
	Fname    *string
	Lname    *string
	Bod      *string
	Phone    *string
	Email    *string
	Password *string
}

// ApplyProfile validates and applies profile changes
func (u *User) ApplyProfile(c ProfileChanges) error {
	next := *u
	if c.Username != nil {
		next.Username = strings.TrimSpace(*c.Username)
	}
	if c.Fname != nil {
		next.Fname = strings.TrimSpace(*c.Fname)
	}
	if c.Lname != nil {
		next.Lname = strings.TrimSpace(*c.Lname)
	}
	if c.Phone != nil {
		next.Phone = strings.TrimSpace(*c.Phone)
	}
	if c.Email != nil {
		next.Email = strings.TrimSpace(*c.Email)
	}
	if c.Bod != nil {
		bod, err := ParseBirthDate(*c.Bod)
		if err != nil {
			return err
		}
		next.Bod = bod
	}
	if err := next.validateFields(); err != nil {
		return err
	}
	if c.Password != nil {
		if err := next.SetPassword(*c.Password); err != nil {
			return err
		}
	}
	*u = next
	return nil
}

func (u *User) validateFields() error {
	var fe shared.FieldErrors
	shared.ValidateText(&fe, "username", u.Username, 20, true)
	shared.ValidateText(&fe, "fname", u.Fname, 100, true)
	shared.ValidateText(&fe, "lname", u.Lname, 100, true)
	shared.ValidateText(&fe, "phone", u.Phone, 10, true)
	shared.ValidateText(&fe, "email", u.Email, 100, true)
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		fe.Add("email", "Enter a valid email address.")
	}
	return fe.Err()
}
