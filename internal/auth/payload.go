package auth

type MagicLinkRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirectTo"`
}

type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
