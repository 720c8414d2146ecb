package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/planner"
	"tripplanner/session"
)

func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.store.Create()
	h.logger.Debug("Session created", slog.String("session_id", sess.ID()))
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) StartSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := sess.Start(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// SubmitSession synthesizes the posted request. The session only reaches
// the reviewing state when the whole plan was produced.
func (h *Handler) SubmitSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	var req planner.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if !h.withinDayLimit(c, req) {
		return
	}

	if _, err := sess.Submit(req, h); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) BackSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := sess.Back(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (h *Handler) lookup(c *gin.Context) (*session.Session, bool) {
	sess, err := h.store.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return sess, true
}

// reviewedPlan returns the session's plan, answering 409 when there is none yet.
func (h *Handler) reviewedPlan(c *gin.Context) (*planner.TripPlan, bool) {
	sess, ok := h.lookup(c)
	if !ok {
		return nil, false
	}
	plan := sess.Plan()
	if plan == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No trip plan yet. Submit a trip request first."})
		return nil, false
	}
	return plan, true
}
