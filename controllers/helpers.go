package controllers

import (
	"strconv"

	"leasedesk/response"
	"leasedesk/services"
	"leasedesk/services/listing"
	"leasedesk/validator"

	"github.com/gin-gonic/gin"
)

// parseID đọc :id từ path, trả về false và response 400 nếu không hợp lệ
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// bindError trả về 400 với thông điệp dễ đọc từ lỗi binding
func bindError(c *gin.Context, err error) {
	response.BadRequest(c, validator.Message(err))
}

// listQuery đọc tham số danh sách và đưa trang về 0 nếu bộ lọc đổi so với lần trước của session
func listQuery(c *gin.Context, store *services.ListStateStore, list string, facets ...string) listing.Query {
	q := listing.ParseQuery(c.Request.URL.Query(), facets...)
	q.Limit = listing.NormalizeLimit(q.Limit)
	if store != nil {
		q = store.Advance(c.Request.Context(), c.GetString("sessionId"), list, q)
	}
	return q
}

func respondList[T any](c *gin.Context, res listing.Result[T]) {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	response.SuccessWithPage(c, items, response.Pagination{
		Page:       res.Page,
		Limit:      res.Limit,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Suggestion: res.Suggestion,
	})
}
