package dto

import "github.com/vibast-solutions/ms-go-accounts/app/entity"

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}
