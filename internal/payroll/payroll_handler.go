package payroll

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	payrollerrors "campus-hr/internal/payroll/errors"
	"campus-hr/internal/shared/apperror"
	"campus-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const summaryCacheTTL = 5 * time.Minute

type Handler struct {
	service Service
	redis   *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service, logger: zap.L().Named("payroll.handler")}
}

// NewHandlerWithRedis caches period summaries; recompute and finalize
// invalidate the person's cached entries.
func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, redis: rdb, logger: zap.L().Named("payroll.handler")}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Recompute(c *gin.Context) {
	var req RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Recompute(c.Request.Context(), req, c.GetString("person_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.invalidateSummaries(c.Request.Context(), req.PersonID)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByPerson(c *gin.Context) {
	resp, err := h.service.GetByPerson(c.Request.Context(), c.Param("personId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	personID := c.Param("personId")
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	cacheKey := summaryCacheKey(personID, from, to)
	if h.redis != nil {
		if raw, err := h.redis.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			var cached PeriodSummary
			if json.Unmarshal(raw, &cached) == nil {
				c.Header("X-Cache", "HIT")
				response.Success(c, http.StatusOK, cached, nil)
				return
			}
		}
	}

	sum, err := h.service.Summary(c.Request.Context(), personID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.redis != nil {
		if raw, err := json.Marshal(sum); err == nil {
			if err := h.redis.Set(c.Request.Context(), cacheKey, raw, summaryCacheTTL).Err(); err != nil {
				h.logger.Warn("summary cache write failed", zap.Error(err))
			}
		}
	}
	c.Header("X-Cache", "MISS")
	response.Success(c, http.StatusOK, sum, nil)
}

func (h *Handler) Finalize(c *gin.Context) {
	resp, err := h.service.Finalize(c.Request.Context(), c.Param("id"), c.GetString("person_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.invalidateSummaries(c.Request.Context(), resp.PersonID)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	resp, err := h.service.MarkPaid(c.Request.Context(), c.Param("id"), c.GetString("person_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func summaryCacheKey(personID string, from, to time.Time) string {
	return "payroll:summary:" + personID + ":" + from.Format("2006-01-02") + ":" + to.Format("2006-01-02")
}

func (h *Handler) invalidateSummaries(ctx context.Context, personID string) {
	if h.redis == nil || personID == "" {
		return
	}
	iter := h.redis.Scan(ctx, 0, "payroll:summary:"+personID+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := h.redis.Del(ctx, iter.Val()).Err(); err != nil {
			h.logger.Warn("summary cache invalidation failed",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
	if err := iter.Err(); err != nil {
		h.logger.Warn("summary cache scan failed", zap.Error(err))
	}
}

func parseDateQuery(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}
