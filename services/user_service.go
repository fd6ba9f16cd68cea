// services/user_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservation/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService wraps *gorm.DB for account management. All management
// operations are superadmin-only; registration is open.
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Register creates a guest-role account with a bcrypt password hash.
func (s *UserService) Register(name, email, password string) (*models.User, error) {
	fieldErrs := FieldErrors{}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		fieldErrs["name"] = "Name is required."
	}
	if email == "" || !strings.Contains(email, "@") {
		fieldErrs["email"] = "Please provide a valid email address."
	}
	if len(password) < 8 {
		fieldErrs["password"] = "Password must be at least 8 characters."
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	var dup int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&dup).Error; err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if dup > 0 {
		return nil, FieldErrors{"email": "This email is already registered."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleGuest,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrForbidden
	}
	return &user, nil
}

// UserFilter narrows List results.
type UserFilter struct {
	Role   models.Role
	Search string // matches name or email
}

func (s *UserService) List(actor models.User, filter UserFilter) ([]models.User, error) {
	if !actor.Role.Can(models.ActionManageUsers) {
		return nil, ErrForbidden
	}

	query := s.DB.Model(&models.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return users, nil
}

func (s *UserService) getByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user %d: %w", id, err)
	}
	return &user, nil
}

// Get loads one account with its latest bookings. Superadmin only.
func (s *UserService) Get(actor models.User, id uint) (*models.User, error) {
	if !actor.Role.Can(models.ActionManageUsers) {
		return nil, ErrForbidden
	}

	var user models.User
	err := s.DB.
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(10)
		}).
		Preload("Bookings.Room").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user %d: %w", id, err)
	}
	return &user, nil
}

// Update edits name, email and role. Superadmin only.
func (s *UserService) Update(actor models.User, id uint, name, email string, role models.Role) (*models.User, error) {
	if !actor.Role.Can(models.ActionManageUsers) {
		return nil, ErrForbidden
	}

	user, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	fieldErrs := FieldErrors{}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		fieldErrs["name"] = "Name is required."
	}
	if email == "" || !strings.Contains(email, "@") {
		fieldErrs["email"] = "Please provide a valid email address."
	} else {
		var dup int64
		err := s.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&dup).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if dup > 0 {
			fieldErrs["email"] = "This email is already registered."
		}
	}
	if !role.Valid() {
		fieldErrs["role"] = "Invalid role selected."
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	user.Name = name
	user.Email = email
	user.Role = role
	if err := s.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return user, nil
}

// Delete removes an account. Superadmin only. The last remaining superadmin
// can never be deleted, nor can a user holding an active booking. Bookings
// cascade with the user.
func (s *UserService) Delete(actor models.User, id uint, now time.Time) error {
	if !actor.Role.Can(models.ActionManageUsers) {
		return ErrForbidden
	}

	user, err := s.getByID(id)
	if err != nil {
		return err
	}

	if user.Role.IsSuperadmin() {
		var superadmins int64
		err := s.DB.Model(&models.User{}).Where("role = ?", models.RoleSuperadmin).Count(&superadmins).Error
		if err != nil {
			return fmt.Errorf("failed to count superadmins: %w", err)
		}
		if superadmins <= 1 {
			return ErrLastSuperadmin
		}
	}

	var active int64
	err = s.DB.Model(&models.Booking{}).
		Where("user_id = ?", user.ID).
		Where("status IN ?", []models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Where("check_out_date >= ?", models.DateOnly(now)).
		Count(&active).Error
	if err != nil {
		return fmt.Errorf("failed to check active bookings for user %d: %w", id, err)
	}
	if active > 0 {
		return ErrUserHasActiveBookings
	}

	if err := s.DB.Select("Bookings").Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}
