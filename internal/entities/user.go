package entities

type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Vehicle string `json:"vehicle"`
}

type RegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Vehicle  string `json:"vehicle"`
	Password string `json:"password"`
}
