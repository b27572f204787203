package handler

import (
	"time"

	"github.com/mjiang93/user-service/internal/domain"
)

// UserView is the JSON projection of a user returned over HTTP.
type UserView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func toUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toUserViews(users []domain.User) []UserView {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = toUserView(&users[i])
	}
	return views
}
