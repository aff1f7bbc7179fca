package enum

import (
	"database/sql/driver"
	"fmt"
)

// AppRole gates destructive actions and role management
type AppRole string

const (
	AppRoleAdmin AppRole = "admin"
	AppRoleStaff AppRole = "staff"
)

func (r AppRole) String() string {
	return string(r)
}

func (r AppRole) IsValid() bool {
	return r == AppRoleAdmin || r == AppRoleStaff
}

func (r *AppRole) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := AppRole(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid role %q", str)
	}
	*r = v
	return nil
}

func (r AppRole) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *AppRole) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*r = AppRoleStaff
		return nil
	}
	*r = AppRole(str)
	return nil
}
