package models

import "time"

// Role роль пользователя
type Role string

const (
	RolePublic         Role = "public"
	RoleLawEnforcement Role = "law_enforcement"
)

// Valid сообщает, входит ли роль в перечисление
func (r Role) Valid() bool {
	return r == RolePublic || r == RoleLawEnforcement
}

type User struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch частичное обновление пользователя
type UserPatch struct {
	Role      *Role
	IsBlocked *bool
}
