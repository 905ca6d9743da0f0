package identity

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shoestore/backend/internal/domain/shared"
)

// Role represents a user's access level
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is a known value
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// DefaultCustomerPassword is the initial password assigned to accounts
// provisioned implicitly from a sales invoice's customer email. The
// customer resets it through the storefront.
const DefaultCustomerPassword = "123456"

// User is an account in the admin console or storefront. Customers may be
// provisioned implicitly when a sales invoice references a new email.
type User struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Phone        string `gorm:"type:varchar(20)"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(username, email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Email không được để trống")
	}
	if strings.TrimSpace(username) == "" {
		username = email
		if i := strings.Index(email, "@"); i > 0 {
			username = email[:i]
		}
	}
	if !role.IsValid() {
		role = RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.TrimSpace(username),
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
	}, nil
}

// NewCustomerAccount creates the implicit account for a sales invoice
// customer: default password, role "user".
func NewCustomerAccount(email, name string) (*User, error) {
	return NewUser(name, email, DefaultCustomerPassword, RoleUser)
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(newPassword string) error {
	if len(newPassword) < 6 {
		return shared.NewDomainError("VALIDATION_ERROR", "Mật khẩu phải có ít nhất 6 ký tự")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
