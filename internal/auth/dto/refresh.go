package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"-"`
}

type MessageOutput struct {
	Message string `json:"message"`
}
