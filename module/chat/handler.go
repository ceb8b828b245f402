package chat

import (
	"strconv"

	mid "PairChat/middleware"
	midsec "PairChat/middleware/security"
	"PairChat/module/chat/service"
	"PairChat/tools/errs"
	"PairChat/tools/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.MessageService
}

func NewHandler(svc *service.MessageService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the conversation/message API. Everything here
// requires auth.
func (h *Handler) RegisterRoutes(r gin.IRoutes, jwt security.Options) {
	opt := mid.RouteOpt{IsAuth: true}
	mid.GET(r, "/api/conversations", jwt, h.HandleListConversations, opt)
	mid.POST(r, "/api/conversations", jwt, h.HandleCreateConversation, opt)
	mid.GET(r, "/api/conversations/:id/messages", jwt, h.HandleGetMessages, opt)
	mid.POST(r, "/api/conversations/:id/messages", jwt, h.HandleCreateMessage, opt)
	mid.POST(r, "/api/conversations/:id/read", jwt, h.HandleMarkRead, opt)
}

func conversationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		mid.Fail(c, errs.ErrArgs.WithDetail("bad conversation id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) HandleListConversations(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	out, err := h.svc.ListConversations(c.Request.Context(), userID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, out)
}

type createConversationReq struct {
	OtherUserID int64 `json:"otherUserId" binding:"required"`
}

func (h *Handler) HandleCreateConversation(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	var req createConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		mid.Fail(c, errs.ErrArgs.WithDetail(err.Error()))
		return
	}
	conv, err := h.svc.CreateConversation(c.Request.Context(), userID, req.OtherUserID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, conv)
}

func (h *Handler) HandleGetMessages(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	convID, ok := conversationID(c)
	if !ok {
		return
	}
	msgs, err := h.svc.GetMessages(c.Request.Context(), userID, convID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, msgs)
}

type createMessageReq struct {
	Content   string `json:"content" binding:"required"`
	ReplyToID int64  `json:"replyToId"`
}

func (h *Handler) HandleCreateMessage(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	convID, ok := conversationID(c)
	if !ok {
		return
	}
	var req createMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		mid.Fail(c, errs.ErrArgs.WithDetail(err.Error()))
		return
	}
	m, err := h.svc.CreateMessage(c.Request.Context(), userID, convID, req.Content, req.ReplyToID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, m)
}

func (h *Handler) HandleMarkRead(c *gin.Context) {
	userID, _ := midsec.CurrentUserID(c)
	convID, ok := conversationID(c)
	if !ok {
		return
	}
	n, err := h.svc.MarkRead(c.Request.Context(), userID, convID)
	if err != nil {
		mid.Fail(c, err)
		return
	}
	mid.OK(c, gin.H{"marked": n})
}
