package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type listPhonesQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

func (h *Handler) listPhones(c *gin.Context) {
	var q listPhonesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid query: %v", err)})
		return
	}

	page, err := h.phones.ListPhones(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	resp := PhoneListResponse{
		Phones: make([]PhoneResponse, len(page.Phones)),
		Meta:   PageMeta{Limit: page.Limit, Offset: page.Offset, Count: len(page.Phones), Total: page.Total},
	}
	for i := range page.Phones {
		resp.Phones[i] = phoneToResponse(page.Phones[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPhone(c *gin.Context) {
	id, ok := parseID(c, "phone")
	if !ok {
		return
	}

	phone, err := h.phones.GetPhone(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	h.writeCached(c, phone.UpdatedAt, phoneToResponse(*phone))
}
