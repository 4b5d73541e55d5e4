package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/cache"
	"github.com/CurioCloud-Team/CurioCloudBackendN/internal/store"
)

// LessonPlanHandler serves finalized lesson plans. Single-plan reads go
// through the Redis cache; the cache may be nil.
type LessonPlanHandler struct {
	plans store.LessonPlanRepo
	cache *cache.PlanCache
}

func NewLessonPlanHandler(plans store.LessonPlanRepo, planCache *cache.PlanCache) *LessonPlanHandler {
	return &LessonPlanHandler{plans: plans, cache: planCache}
}

func (h *LessonPlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list lesson plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessonPlans": plans})
}

func (h *LessonPlanHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson plan id"})
		return
	}
	userID := currentUserID(c)
	ctx := c.Request.Context()

	if raw, ok := h.cache.GetPlan(ctx, userID, id); ok {
		recordPlanCacheLookup(true)
		c.Data(http.StatusOK, "application/json", raw)
		return
	}
	recordPlanCacheLookup(false)

	plan, err := h.plans.Get(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load lesson plan"})
		return
	}

	// Plans are immutable, so the serialized response can be cached
	// as-is.
	if raw, err := json.Marshal(plan); err == nil {
		h.cache.SetPlan(ctx, userID, id, raw)
	}
	c.JSON(http.StatusOK, plan)
}

func (h *LessonPlanHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson plan id"})
		return
	}
	userID := currentUserID(c)

	err = h.plans.Delete(c.Request.Context(), id, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson plan not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete lesson plan"})
		return
	}

	h.cache.DeletePlan(c.Request.Context(), userID, id)
	c.Status(http.StatusNoContent)
}
