package schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mensa/internal/menutable"
)

// SnapshotSource hands out the current configuration snapshot,
// nil when the canteen has not been set up yet.
type SnapshotSource interface {
	Snapshot() *Snapshot
}

type Handler struct {
	source SnapshotSource
	now    func() time.Time
}

func NewHandler(source SnapshotSource) *Handler {
	return &Handler{source: source, now: time.Now}
}

// --------------------------------------------------
// GET /day/today
// --------------------------------------------------
func (h *Handler) Today(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	info, err := ResolveDay(snap, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, DayPayload(info))
}

// --------------------------------------------------
// GET /day/next
// --------------------------------------------------
func (h *Handler) Next(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	info, err := ResolveNext(snap, h.now())
	if err != nil {
		if errors.Is(err, ErrNoValidDay) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, NextDayPayload(info))
}

// --------------------------------------------------
// GET /day/:date
// --------------------------------------------------
func (h *Handler) Day(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}

	d, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}

	info, err := ResolveDay(snap, d)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, DayPayload(info))
}

func (h *Handler) snapshot(c *gin.Context) (*Snapshot, bool) {
	snap := h.source.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "canteen not configured"})
		return nil, false
	}
	return snap, true
}

// DayPayload projects a DayInfo into the wire shape shared by the day
// endpoints and the sensor surface.
func DayPayload(info *DayInfo) gin.H {
	return dayPayload(info, "date")
}

// NextDayPayload is the /day/next shape: the resolved date travels
// under next_date instead of date.
func NextDayPayload(info *DayInfo) gin.H {
	return dayPayload(info, "next_date")
}

func dayPayload(info *DayInfo, dateKey string) gin.H {
	payload := gin.H{
		dateKey:      info.Date.Format("2006-01-02"),
		"week":       info.Week,
		"day_number": info.Weekday,
		"day":        info.DayName,
		"menu_name":  info.MenuName,
		"is_closed":  info.IsClosed,
		"has_entry":  info.HasEntry,
	}
	if info.HasEntry {
		payload["day_attrs"] = info.DayAttrs
		payload["main_course"] = MealPayload(info.MainCourse)
		payload["second_course"] = MealPayload(info.SecondCourse)
		payload["side"] = MealPayload(info.Side)
		payload["fruit"] = MealPayload(info.Fruit)
	}
	return payload
}

func MealPayload(meal *menutable.Meal) gin.H {
	return gin.H{
		"value": meal.Value,
		"attrs": meal.Attrs,
	}
}
