package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
)

// SortableFields are the columns a user listing may be ordered by.
var SortableFields = []string{FieldID, FieldUsername, FieldRole}

type User struct {
	ID        int64      `db:"id"         insert:"-"`
	Username  string     `db:"username"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
