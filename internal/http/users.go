package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bilemo-api/internal/domain"
	"bilemo-api/internal/service"
)

type listUsersQuery struct {
	Product string `form:"product" binding:"omitempty,alphanum"`
	Order   string `form:"order" binding:"omitempty,oneof=asc desc"`
	Limit   int    `form:"limit" binding:"omitempty,min=0"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

type createUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	PhoneChoice int64  `json:"phone_choice"`
}

func (h *Handler) listUsers(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid query: %v", err)})
		return
	}
	order, _ := domain.ParseSortOrder(q.Order)

	page, err := h.query.ListUsers(c.Request.Context(), currentClientID(c), domain.UserQuery{
		Product: q.Product,
		Order:   order,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userPageToResponse(page))
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id, currentClientID(c))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	h.writeCached(c, user.UpdatedAt, userToDetail(*user))
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid body: %v", err)})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), service.UserInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		PhoneChoiceID: req.PhoneChoice,
	}, currentClientID(c))
	h.metrics.observeUserOperation("create", err)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Header("Location", userPath(user.ID))
	c.JSON(http.StatusCreated, userToDetail(*user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}

	err := h.users.DeleteUser(c.Request.Context(), id, currentClientID(c))
	h.metrics.observeUserOperation("delete", err)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s id", entity)})
		return 0, false
	}
	return id, true
}

// writeCached answers with a private, revalidated cache directive and honours
// If-Modified-Since.
func (h *Handler) writeCached(c *gin.Context, modified time.Time, body any) {
	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d, must-revalidate", int(h.cacheMaxAge.Seconds())))
	if !modified.IsZero() {
		modified = modified.UTC().Truncate(time.Second)
		c.Header("Last-Modified", modified.Format(http.TimeFormat))
		if since, err := http.ParseTime(c.GetHeader("If-Modified-Since")); err == nil && !modified.After(since) {
			c.Status(http.StatusNotModified)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
