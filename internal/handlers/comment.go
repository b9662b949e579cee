package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yilin/internal/models"
	"yilin/internal/repository"
	"yilin/internal/utils"
)

type CommentHandler struct {
	comments *repository.CommentRepository
}

func NewCommentHandler(comments *repository.CommentRepository) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// citizenRequest 投票/举报类请求的公共请求体
type citizenRequest struct {
	CitizenID uint `json:"citizen_id"`
}

// List handles GET /api/comments: every comment, authors unresolved.
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.comments.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	renderComments(comments)
	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	var in repository.CreateCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	renderComment(comment)
	c.JSON(http.StatusCreated, comment)
}

// ListFor handles GET /api/subjects/:context/:reference/comments: the
// comments for one subject, most recent first.
func (h *CommentHandler) ListFor(c *gin.Context) {
	q := repository.SubjectQuery{
		Context:   c.Param("context"),
		Reference: c.Param("reference"),
	}

	comments, err := h.comments.GetFor(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	renderComments(comments)
	c.JSON(http.StatusOK, comments)
}

// Reply handles POST /api/comments/:cid/reply.
func (h *CommentHandler) Reply(c *gin.Context) {
	var in repository.ReplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.comments.Reply(c.Request.Context(), c.Param("cid"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	reply.TextHTML = utils.RenderMarkdown(reply.Text)
	c.JSON(http.StatusCreated, reply)
}

// Upvote handles POST /api/comments/:cid/upvote.
func (h *CommentHandler) Upvote(c *gin.Context) {
	var req citizenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CitizenID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "citizen_id is required"})
		return
	}

	comment, err := h.comments.Upvote(c.Request.Context(), c.Param("cid"), req.CitizenID)
	if err != nil {
		respondError(c, err)
		return
	}

	renderComment(comment)
	c.JSON(http.StatusOK, comment)
}

// Downvote handles POST /api/comments/:cid/downvote.
func (h *CommentHandler) Downvote(c *gin.Context) {
	var req citizenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CitizenID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "citizen_id is required"})
		return
	}

	comment, err := h.comments.Downvote(c.Request.Context(), c.Param("cid"), req.CitizenID)
	if err != nil {
		respondError(c, err)
		return
	}

	renderComment(comment)
	c.JSON(http.StatusOK, comment)
}

// Flag handles POST /api/comments/:cid/flag (举报为垃圾内容)
func (h *CommentHandler) Flag(c *gin.Context) {
	var req citizenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CitizenID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "citizen_id is required"})
		return
	}

	comment, err := h.comments.Flag(c.Request.Context(), c.Param("cid"), req.CitizenID)
	if err != nil {
		respondError(c, err)
		return
	}

	renderComment(comment)
	c.JSON(http.StatusOK, comment)
}

// Unflag handles POST /api/comments/:cid/unflag (撤销举报)
func (h *CommentHandler) Unflag(c *gin.Context) {
	var req citizenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CitizenID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "citizen_id is required"})
		return
	}

	comment, err := h.comments.Unflag(c.Request.Context(), c.Param("cid"), req.CitizenID)
	if err != nil {
		respondError(c, err)
		return
	}

	renderComment(comment)
	c.JSON(http.StatusOK, comment)
}

// renderComment 填充评论及其回复的 Markdown 渲染结果
func renderComment(comment *models.Comment) {
	comment.TextHTML = utils.RenderMarkdown(comment.Text)
	for i := range comment.Replies {
		comment.Replies[i].TextHTML = utils.RenderMarkdown(comment.Replies[i].Text)
	}
}

func renderComments(comments []models.Comment) {
	for i := range comments {
		renderComment(&comments[i])
	}
}
