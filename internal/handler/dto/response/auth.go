package response

import "futsal-reserve/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string                      `json:"access_token"`
	User        *queries.AuthorizedUserView `json:"user"`
}

type MeResponse struct {
	User    *queries.AuthorizedUserView `json:"user"`
	Balance int64                       `json:"balance"`
}
