package auth

import (
	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/pkg/binding"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", h.login)

	p := a.Group("", authMW)
	p.GET("/me", h.me)
	p.GET("/password-info", h.passwordInfo)
	p.POST("/change-password", h.changePassword)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}
	res, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *Handler) me(c *gin.Context) {
	info, err := h.svc.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

func (h *Handler) passwordInfo(c *gin.Context) {
	info, err := h.svc.PasswordInfo(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

func (h *Handler) changePassword(c *gin.Context) {
	var dto ChangePasswordDTO
	if err := binding.Bind(c, &dto); err != nil {
		response.BadRequest(c, "Current password and new password are required")
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), dto.CurrentPassword, dto.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Password updated successfully")
}
