package users

import "stocktake/frontend/shared/nav"

// UserView is one row on the admin users page.
type UserView struct {
	ID        int64  `bun:"id"`
	Username  string `bun:"username"`
	Role      string `bun:"role"`
	CreatedAt string `bun:"created_at"`
}

// PageData drives the admin users page.
type PageData struct {
	Nav          nav.TopNavData
	Status       string
	ErrorMessage string
	Users        []UserView
}
