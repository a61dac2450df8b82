package dto

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterOutput struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
