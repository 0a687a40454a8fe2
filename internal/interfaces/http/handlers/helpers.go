package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"mercato.backend/internal/domain/entities"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/internal/interfaces/http/middleware"
	"mercato.backend/internal/interfaces/http/response"
	"mercato.backend/pkg/utils"
)

const defaultPageSize = 20

// actor returns the authenticated caller or writes a 401.
func actor(c *gin.Context) (entities.Actor, bool) {
	a, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated("user not authenticated"))
		return entities.Actor{}, false
	}
	return a, true
}

// pathID parses a positive integer path parameter or writes a 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, domainerrors.BadRequest("invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

func pagination(c *gin.Context) (int, int) {
	req := utils.ParsePageRequest(c.Query("page"), c.Query("limit"), defaultPageSize)
	return req.Page, req.Limit
}
