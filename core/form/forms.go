package form

// CSRF carries the anti-forgery token. Embed it in every form that is
// posted back.
type CSRF struct {
	CSRFToken string `form:"CSRFToken" validate:"required"`
}

// Login is the sign-in form.
type Login struct {
	CSRF
	Username string `form:"username" validate:"required,min=4,max=25,username"`
	Password string `form:"password" validate:"required,min=6,max=35"`
}

func (Login) Messages() map[string]string {
	return map[string]string{
		"username.username":  "Invalid Username.",
		"username.min":       "Username must be between 4 to 25 characters",
		"username.max":       "Username must be between 4 to 25 characters",
		"password.min":       "Password must be between 6 to 35 characters",
		"password.max":       "Password must be between 6 to 35 characters",
		"CSRFToken.required": "Invalid CSRF Token",
	}
}

// Registration is the sign-up form.
type Registration struct {
	CSRF
	Username        string `form:"username" validate:"required,min=4,max=25,username"`
	Email           string `form:"email" validate:"required,min=6,max=35,email"`
	Password        string `form:"password" validate:"required,min=6,max=35"`
	ConfirmPassword string `form:"confirm" validate:"required,password_strength,eqfield=Password"`
}

func (Registration) Messages() map[string]string {
	return map[string]string{
		"username.username":         "Invalid Username.",
		"username.min":              "Username must be between 4 to 25 characters",
		"username.max":              "Username must be between 4 to 25 characters",
		"email.email":               "Invalid Email Format",
		"email.min":                 "Invalid Email length",
		"email.max":                 "Invalid Email length",
		"password.min":              "Password must be between 6 to 35 characters",
		"password.max":              "Password must be between 6 to 35 characters",
		"confirm.password_strength": "Password must have at least one letter, number, and special character",
		"confirm.eqfield":           "Passwords must match",
		"CSRFToken.required":        "Invalid CSRF Token",
	}
}

// EmailVerification is posted from the verification link page.
type EmailVerification struct {
	CSRF
	Token string `form:"token" validate:"required,len=20"`
}

func (EmailVerification) Messages() map[string]string {
	return map[string]string{
		"token.len":          "Bad Validation Token",
		"token.required":     "Bad Validation Token",
		"CSRFToken.required": "Invalid CSRF Token",
	}
}
