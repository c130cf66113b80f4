package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

const (
	MessageNotFound     = "User not found"
	MessageTaken        = "Username already taken"
	MessageDeleteSelf   = "You cannot delete your own account"
	MessageInvalidID    = "Invalid user id"
	MessageListFailed   = "Failed to fetch users"
	MessageSaveFailed   = "Failed to save user"
	MessageDeleteFailed = "Failed to delete user"
	MessageDeleted      = "User deleted"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,trimmed" example:"frontdesk"`
	Password string `json:"password" validate:"required,min=8,max=72"        example:"s3cretpass"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin staff"  example:"staff"`
}

// Normalize lowercases the role and fills in staff when none was sent.
func (r *CreateUserRequest) Normalize() {
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))

	if r.Role == "" {
		r.Role = constant.RoleStaff
	}
}

func (r *CreateUserRequest) ToModel(hashedPassword string) model.User {
	now := timezone.Now()

	return model.User{
		Username: r.Username,
		Password: hashedPassword,
		Role:     r.Role,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type UserResponse struct {
	ID        int64      `json:"id"                   example:"1"`
	Username  string     `json:"username"             example:"admin"`
	Role      string     `json:"role"                 example:"admin"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Username = user.Username
	r.Role = user.Role
	r.LastLogin = user.LastLogin
	r.CreatedAt = user.CreatedAt
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
}

func (r *GetUsersResponse) FromModels(users []model.User) {
	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}
}
