package models

// SignupRequest carries the multipart signup form fields. The optional
// profile image is handled separately by the upload store.
type SignupRequest struct {
	Username     string `form:"username" validate:"required,min=3,max=64"`
	Password     string `form:"password" validate:"required,min=5"`
	University   string `form:"university" validate:"required"`
	Gender       string `form:"gender" validate:"required"`
	Nationality  string `form:"nationality" validate:"required"`
	Phone        string `form:"phone" validate:"required"`
	ProfileImage string `form:"-" validate:"-"`
}

// LoginRequest holds user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the authenticated-user payload returned on login.
type SessionUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Token        string `json:"token"`
	IsOnline     bool   `json:"isOnline"`
	ProfileImage string `json:"profileImage"`
}

// LoginResponse wraps the session user with a client-facing message.
type LoginResponse struct {
	Message string      `json:"message"`
	User    SessionUser `json:"user"`
}

// AdminLoginRequest holds admin credentials.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse returns the issued admin token.
type AdminLoginResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AdminRegisterRequest creates a new admin account.
type AdminRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}
