package store

import (
	"strings"

	"github.com/beesaferoot/tenancy/internal/apperr"
	"github.com/beesaferoot/tenancy/internal/models"
)

func (s *Store) CreateUser(u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return writeErr("user", "lookup email", err)
	}
	if count > 0 {
		return apperr.Conflict("user", "email %s is already in use", u.Email)
	}
	return writeErr("user", "create", s.db.Create(u).Error)
}

func (s *Store) SaveUser(u *models.User) error {
	return writeErr("user", "save", s.db.Save(u).Error)
}

func (s *Store) FindUser(id uint) (*models.User, error) {
	return first[models.User](s, "user", id)
}

func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, wrap("user", email, err)
	}
	return &u, nil
}

func (s *Store) UserExists(id uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, writeErr("user", "lookup", err)
	}
	return count > 0, nil
}

// UserReferences counts the rows that name the user as landlord or tenant.
func (s *Store) UserReferences(id uint) (int64, error) {
	var total int64
	for _, ref := range []struct {
		model  any
		column string
	}{
		{&models.Property{}, "landlord_id"},
		{&models.Lease{}, "tenant_id"},
		{&models.MaintenanceRequest{}, "tenant_id"},
	} {
		var n int64
		if err := s.db.Model(ref.model).Where(ref.column+" = ?", id).Count(&n).Error; err != nil {
			return 0, writeErr("user", "count references", err)
		}
		total += n
	}
	return total, nil
}

// DeleteUser removes the user and the notifications addressed to them.
func (s *Store) DeleteUser(id uint) error {
	if err := s.db.Where("recipient_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
		return writeErr("user", "delete notifications", err)
	}
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return writeErr("user", "delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id").Find(&users).Error
	return users, writeErr("user", "list", err)
}

// UsersByRole matches the JSON-encoded role column, which holds lower-case
// tags.
func (s *Store) UsersByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("roles LIKE ?", roleLike(role)).Order("id").Find(&users).Error
	return users, writeErr("user", "list by role", err)
}

func roleLike(role models.Role) string {
	tag, _ := role.MarshalText()
	return `%"` + string(tag) + `"%`
}
