package auth

type LoginDTO struct {
	Email    string `json:"email"    form:"email"    binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     form:"newPassword"     binding:"required"`
}

// AdminInfo is the public view of the administrator.
type AdminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResult struct {
	Token string    `json:"token"`
	Admin AdminInfo `json:"admin"`
}

type PasswordInfo struct {
	HasPassword    bool   `json:"hasPassword"`
	PasswordMasked string `json:"passwordMasked"`
}

const (
	minPasswordLength = 6
	// maskLength is fixed so the mask says nothing about the real password.
	maskLength = 8
	bcryptCost = 10
)
