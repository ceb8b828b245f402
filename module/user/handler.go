package user

import (
	mid "PairChat/middleware"
	midsec "PairChat/middleware/security"
	"PairChat/module/user/service"
	"PairChat/tools/errs"
	"PairChat/tools/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.UserService
}

func NewHandler(svc *service.UserService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the account and profile API.
func (h *Handler) RegisterRoutes(r gin.IRoutes, jwt security.Options) {
	mid.POST(r, "/api/register", jwt, h.HandleRegister, mid.RouteOpt{})
	mid.POST(r, "/api/login", jwt, h.HandleLogin, mid.RouteOpt{})
	mid.GET(r, "/api/me", jwt, h.HandleMe, mid.RouteOpt{IsAuth: true})
	mid.GET(r, "/api/users", jwt, h.HandleListUsers, mid.RouteOpt{IsAuth: true})
	mid.POST(r, "/api/profile/password", jwt, h.HandleChangePassword, mid.RouteOpt{IsAuth: true})
	mid.POST(r, "/api/profile/picture", jwt, h.HandleUpdatePicture, mid.RouteOpt{IsAuth: true})
}

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) HandleRegister(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		mid.Fail(c, errs.ErrArgs.WithDetail(err.Error()))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, u.Public())
}

func (h *Handler) HandleLogin(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		mid.Fail(c, errs.ErrArgs.WithDetail(err.Error()))
		return
	}
	token, u, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, gin.H{"token": token, "user": u.Public()})
}

func (h *Handler) HandleMe(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	u, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, u.Public())
}

func (h *Handler) HandleListUsers(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	users, err := h.svc.ListUsers(c.Request.Context(), userID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, users)
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *Handler) HandleChangePassword(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		mid.Fail(c, errs.ErrArgs.WithDetail(err.Error()))
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, nil)
}

type updatePictureReq struct {
	PictureURL string `json:"pictureUrl" binding:"required"`
}

func (h *Handler) HandleUpdatePicture(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	var req updatePictureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		mid.Fail(c, errs.ErrArgs.WithDetail(err.Error()))
		return
	}
	if err := h.svc.UpdatePicture(c.Request.Context(), userID, req.PictureURL); err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, nil)
}
