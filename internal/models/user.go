package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User is an account known to the core. Credentials live with the
// authentication service, not here.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Phone     string
	Roles     RoleSet `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor returns the identity used for authorization decisions.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, Roles: u.Roles}
}

// RoleSet is the many-valued role membership of a user, stored as a JSON
// array of tags.
type RoleSet []Role

func (rs RoleSet) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (rs RoleSet) Value() (driver.Value, error) {
	if rs == nil {
		rs = RoleSet{}
	}
	b, err := json.Marshal([]Role(rs))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (rs *RoleSet) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*rs = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported role set column type %T", src)
	}
	var roles []Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return fmt.Errorf("decode role set: %w", err)
	}
	*rs = roles
	return nil
}

// NewRoleSet parses tags into a deduplicated role set.
func NewRoleSet(tags ...string) (RoleSet, error) {
	set := make(RoleSet, 0, len(tags))
	for _, tag := range tags {
		role, err := ParseRole(tag)
		if err != nil {
			return nil, err
		}
		if !set.Has(role) {
			set = append(set, role)
		}
	}
	return set, nil
}

// Actor is an authenticated caller: an id and its role set.
type Actor struct {
	ID    uint
	Roles RoleSet
}

func (a Actor) HasRole(role Role) bool {
	return a.Roles.Has(role)
}

func (a Actor) IsAdmin() bool {
	return a.Roles.Has(RoleAdmin)
}
