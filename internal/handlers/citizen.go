package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yilin/internal/repository"
	"yilin/internal/utils"
)

type CitizenHandler struct {
	citizens *repository.CitizenRepository
}

func NewCitizenHandler(citizens *repository.CitizenRepository) *CitizenHandler {
	return &CitizenHandler{citizens: citizens}
}

// Create handles POST /api/citizens. It registers a citizen profile so it can
// author comments and cast votes. No credentials here; identity verification
// belongs to the upstream service.
func (h *CitizenHandler) Create(c *gin.Context) {
	var in repository.CreateCitizenInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	citizen, err := h.citizens.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, citizen)
}

// Get handles GET /api/citizens/:id (公民摘要信息)
func (h *CitizenHandler) Get(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))
	if id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid citizen id"})
		return
	}

	citizen, err := h.citizens.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, citizen)
}
