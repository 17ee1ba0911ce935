// Package models defines the data shapes exchanged with the user-management
// service.
package models

import "encoding/json"

// Known role values. The role set is open; anything else is treated as a
// regular user.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the identity record the session holds. Views that display or
// edit it work on copies; the session owns the authoritative value.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user holds the ADMIN role. Safe on a nil
// receiver.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// FlexID accepts both string and numeric JSON ids. Older server builds
// returned numeric ids.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// Profile is the wire form of the profile and user-management responses.
// Older server payloads used fullName/phoneNumber instead of name/phone,
// so both spellings are accepted.
type Profile struct {
	ID          FlexID `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar"`
}

// User maps the wire payload onto the identity record, preferring the
// current field names over the legacy ones.
func (p *Profile) User() *User {
	name := p.Name
	if name == "" {
		name = p.FullName
	}
	phone := p.Phone
	if phone == "" {
		phone = p.PhoneNumber
	}
	return &User{
		ID:     string(p.ID),
		Email:  p.Email,
		Name:   name,
		Phone:  phone,
		Role:   p.Role,
		Avatar: p.Avatar,
	}
}
