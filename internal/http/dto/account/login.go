package account

// LoginRequest es el body de POST /account/login.
type LoginRequest struct {
	Token string `json:"token"`
}

// LoginResponse es la respuesta 200 del login.
// Role siempre va en lowercase ("user" | "admin").
type LoginResponse struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// LoginResult es el resultado del orquestador, previo a serializar.
type LoginResult struct {
	AccountName string
	Role        string
}
