package response // import "github.com/openleaf/openleaf/http/response"

import (
	"github.com/openleaf/openleaf/model"
)

// UserResponse strips credentials before a user leaves the server.
func UserResponse(user *model.User) *model.User {
	return &model.User{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Email:       user.Email,
		CreatedTs:   user.CreatedTs,
		LastLoginTs: user.LastLoginTs,
	}
}

func UserListResponse(users []*model.User) []*model.User {
	var response []*model.User
	for _, user := range users {
		response = append(response, UserResponse(user))
	}
	return response
}
