package event

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rika4698/event-management-server/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📌 Helpers
func requireUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func parseEventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// Malformed ids surface as an internal error, same as any other
		// store-addressing failure
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 📄 List Events - GET /events?search=&date=&range=
func (h *Handler) ListEvents(c *gin.Context) {
	search := c.Query("search")
	date := c.Query("date")
	rangeKeyword := c.Query("range")

	events, err := h.Service.List(c.Request.Context(), search, date, rangeKeyword, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 📆 Recent Events - GET /events-limited
func (h *Handler) ListRecent(c *gin.Context) {
	events, err := h.Service.ListRecent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error fetching events",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	requestID := middleware.GetRequestIDFromContext(c)

	e, err := h.Service.Create(c.Request.Context(), &req, userID, ip, requestID)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"acknowledged": true,
		"insertedId":   e.ID,
	})
}

// ===========================
// 🔍 Get Event - GET /event/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id, ok := parseEventID(c)
	if !ok {
		return
	}

	e, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 📄 My Events - GET /my-events/:userId
//
// The path parameter exists for URL compatibility only; the filter uses the
// authenticated identity so callers cannot list another user's events.
func (h *Handler) MyEvents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	events, err := h.Service.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// ===========================
// 🛠 Update Event - PUT /event/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseEventID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	requestID := middleware.GetRequestIDFromContext(c)

	matched, err := h.Service.Update(c.Request.Context(), id, &req, userID, ip, requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged":  true,
		"matchedCount":  matched,
		"modifiedCount": matched,
	})
}

// ===========================
// ❌ Delete Event - DELETE /event/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseEventID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	requestID := middleware.GetRequestIDFromContext(c)

	deleted, err := h.Service.Delete(c.Request.Context(), id, userID, ip, requestID)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"deletedCount": deleted,
	})
}

// ===========================
// 🙋 Join Event - POST /join/:id
func (h *Handler) JoinEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, ok := parseEventID(c)
	if !ok {
		return
	}

	ip := middleware.GetIPFromContext(c)
	requestID := middleware.GetRequestIDFromContext(c)

	err := h.Service.Join(c.Request.Context(), id, userID, ip, requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		case errors.Is(err, ErrAlreadyJoined):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already joined"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to join event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged":  true,
		"matchedCount":  1,
		"modifiedCount": 1,
	})
}
