package config

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mensa/internal/closure"
	"mensa/internal/menutable"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /setup
// --------------------------------------------------
func (h *Handler) Setup(c *gin.Context) {
	var req struct {
		StartDate     string `json:"start_date" binding:"required"`
		StartWeek     int    `json:"start_week" binding:"required"`
		MenuName      string `json:"menu_name" binding:"required"`
		EffectiveDate string `json:"effective_date"`
		MenuCSV       string `json:"menu_csv" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, use YYYY-MM-DD"})
		return
	}

	var effective time.Time
	if req.EffectiveDate != "" {
		if effective, err = parseDate(req.EffectiveDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid effective_date, use YYYY-MM-DD"})
			return
		}
	}

	if err := h.service.Setup(c.Request.Context(), SetupInput{
		StartDate:     startDate,
		StartWeek:     req.StartWeek,
		MenuName:      req.MenuName,
		EffectiveDate: effective,
		MenuCSV:       req.MenuCSV,
	}); err != nil {
		respondConfigError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "canteen configured"})
}

// --------------------------------------------------
// GET /config
// --------------------------------------------------
func (h *Handler) GetConfig(c *gin.Context) {
	dump, err := h.service.Dump()
	if err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusOK, dump)
}

// --------------------------------------------------
// POST /menus
// --------------------------------------------------
func (h *Handler) AddMenu(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		EffectiveDate string `json:"effective_date" binding:"required"`
		MenuCSV       string `json:"menu_csv" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid effective_date, use YYYY-MM-DD"})
		return
	}

	id, err := h.service.AddMenu(c.Request.Context(), req.Name, effective, req.MenuCSV)
	if err != nil {
		respondConfigError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "menu added"})
}

// --------------------------------------------------
// PUT /menus/:id
// --------------------------------------------------
func (h *Handler) EditMenu(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		EffectiveDate string `json:"effective_date" binding:"required"`
		MenuCSV       string `json:"menu_csv"` // empty keeps the current table
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid effective_date, use YYYY-MM-DD"})
		return
	}

	if err := h.service.EditMenu(c.Request.Context(), c.Param("id"), req.Name, effective, req.MenuCSV); err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu updated"})
}

// --------------------------------------------------
// DELETE /menus/:id
// --------------------------------------------------
func (h *Handler) DeleteMenu(c *gin.Context) {
	if err := h.service.DeleteMenu(c.Request.Context(), c.Param("id")); err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

// --------------------------------------------------
// POST /closures/date
// --------------------------------------------------
func (h *Handler) AddClosureDate(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}

	id, err := h.service.AddClosureDate(c.Request.Context(), d)
	if err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "closure date added"})
}

// --------------------------------------------------
// POST /closures/period
// --------------------------------------------------
func (h *Handler) AddClosurePeriod(c *gin.Context) {
	var req struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, use YYYY-MM-DD"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, use YYYY-MM-DD"})
		return
	}

	id, err := h.service.AddClosurePeriod(c.Request.Context(), start, end)
	if err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "closure period added"})
}

// --------------------------------------------------
// DELETE /closures/:id
// --------------------------------------------------
func (h *Handler) DeleteClosure(c *gin.Context) {
	if err := h.service.DeleteClosure(c.Request.Context(), c.Param("id")); err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "closure deleted"})
}

// --------------------------------------------------
// POST /restarts
// --------------------------------------------------
func (h *Handler) AddRestart(c *gin.Context) {
	var req struct {
		Date       string `json:"date" binding:"required"`
		ResumeWeek int    `json:"resume_week" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}

	id, err := h.service.AddRestart(c.Request.Context(), d, req.ResumeWeek)
	if err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "restart point added"})
}

// --------------------------------------------------
// DELETE /restarts/:id
// --------------------------------------------------
func (h *Handler) DeleteRestart(c *gin.Context) {
	if err := h.service.DeleteRestart(c.Request.Context(), c.Param("id")); err != nil {
		respondConfigError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "restart point deleted"})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func respondConfigError(c *gin.Context, err error) {
	var malformed *menutable.MalformedTableError

	switch {
	case errors.Is(err, ErrMenuNotFound),
		errors.Is(err, ErrClosureNotFound),
		errors.Is(err, ErrRestartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyConfigured),
		errors.Is(err, ErrDuplicateClosureDate),
		errors.Is(err, ErrClosureOverlap),
		errors.Is(err, ErrDuplicateRestartDate),
		errors.Is(err, ErrLastMenu):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &malformed),
		errors.Is(err, menutable.ErrEmptyTable),
		errors.Is(err, closure.ErrInvalidPeriod),
		errors.Is(err, ErrStartWeekExceedsTotal),
		errors.Is(err, ErrCSVRequired),
		errors.Is(err, ErrRestartWeekOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
