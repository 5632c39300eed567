package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handler the way routes.Setup does, with a stub in
// place of the JWT middleware so each request can pick its identity via the
// X-Test-User header.
func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(svc)

	r.GET("/events", h.ListEvents)
	r.GET("/events-limited", h.ListRecent)

	protected := r.Group("/")
	protected.Use(func(c *gin.Context) {
		if u := c.GetHeader("X-Test-User"); u != "" {
			var id uint
			fmt.Sscanf(u, "%d", &id)
			c.Set("user_id", id)
		}
		c.Next()
	})
	{
		protected.POST("/events", h.CreateEvent)
		protected.GET("/event/:id", h.GetEventByID)
		protected.PUT("/event/:id", h.UpdateEvent)
		protected.DELETE("/event/:id", h.DeleteEvent)
		protected.POST("/join/:id", h.JoinEvent)
		protected.GET("/my-events/:userId", h.MyEvents)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, userID uint, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateAndGetEvent(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/events", 1, CreateEventRequest{
		Title:    "Go Meetup",
		Location: "Berlin",
		Date:     "2025-05-01",
		Time:     "18:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["acknowledged"])
	id := uint(body["insertedId"].(float64))
	require.NotZero(t, id)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/event/%d", id), 1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Go Meetup", got.Title)
	assert.Equal(t, uint(1), got.CreatedBy)
	assert.Equal(t, 0, got.AttendeeCount)
}

func TestCreateEventWithoutIdentity(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/events", 0, CreateEventRequest{
		Title: "Go Meetup",
		Date:  "2025-05-01",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["msg"])
}

func TestCreateEventBadDate(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/events", 1, CreateEventRequest{
		Title: "Go Meetup",
		Date:  "May 1st",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrInvalidDate.Error(), decodeBody(t, w)["message"])
}

func TestGetEventNotFoundAndMalformedID(t *testing.T) {
	svc, _ := newTestService()
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/event/42", 1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/event/not-a-number", 1, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error", decodeBody(t, w)["message"])
}

func TestListEventsSearch(t *testing.T) {
	svc, _ := newTestService()
	seedEvent(t, svc, 1, "Go Meetup", "2025-03-10")
	seedEvent(t, svc, 1, "Rust Meetup", "2025-03-11")
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/events?search=go", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Go Meetup", events[0].Title)
}

func TestListRecentCapsAtFour(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 6; i++ {
		seedEvent(t, svc, 1, fmt.Sprintf("Event %d", i), fmt.Sprintf("2025-03-%02d", i+1))
	}
	r := newTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/events-limited", 0, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 4)
}

func TestJoinFlow(t *testing.T) {
	svc, _ := newTestService()
	e := seedEvent(t, svc, 1, "Go Meetup", "2025-05-01")
	r := newTestRouter(svc)

	path := fmt.Sprintf("/join/%d", e.ID)

	w := doJSON(t, r, http.MethodPost, path, 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["acknowledged"])
	assert.Equal(t, float64(1), body["modifiedCount"])

	// Same user again
	w = doJSON(t, r, http.MethodPost, path, 2, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already joined", decodeBody(t, w)["message"])

	// Count reflects exactly one join
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/event/%d", e.ID), 2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1, got.AttendeeCount)

	// Missing event
	w = doJSON(t, r, http.MethodPost, "/join/999", 2, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Event not found", decodeBody(t, w)["message"])
}

func TestUpdateEventOwnership(t *testing.T) {
	svc, _ := newTestService()
	e := seedEvent(t, svc, 1, "Go Meetup", "2025-05-01")
	r := newTestRouter(svc)

	path := fmt.Sprintf("/event/%d", e.ID)
	req := UpdateEventRequest{Title: "Go Meetup v2", Date: "2025-05-02"}

	w := doJSON(t, r, http.MethodPut, path, 2, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodPut, path, 1, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["acknowledged"])
	assert.Equal(t, float64(1), body["matchedCount"])
	assert.Equal(t, float64(1), body["modifiedCount"])

	w = doJSON(t, r, http.MethodPut, "/event/999", 1, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEvent(t *testing.T) {
	svc, _ := newTestService()
	e := seedEvent(t, svc, 1, "Go Meetup", "2025-05-01")
	r := newTestRouter(svc)

	path := fmt.Sprintf("/event/%d", e.ID)

	w := doJSON(t, r, http.MethodDelete, path, 2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["deletedCount"])

	// Deleting again acknowledges with zero deletions
	w = doJSON(t, r, http.MethodDelete, path, 1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["deletedCount"])
}

func TestMyEventsUsesTokenIdentity(t *testing.T) {
	svc, _ := newTestService()
	seedEvent(t, svc, 1, "Mine", "2025-03-10")
	seedEvent(t, svc, 2, "Theirs", "2025-03-11")
	r := newTestRouter(svc)

	// Path says user 2 but the identity is user 1; the token wins.
	w := doJSON(t, r, http.MethodGet, "/my-events/2", 1, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Mine", events[0].Title)
}
