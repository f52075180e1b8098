package dto

// LoginForm carries the login form fields.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// RegisterForm carries the user registration form fields.
type RegisterForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}
