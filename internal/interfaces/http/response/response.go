package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "mercato.backend/internal/domain/errors"
	"mercato.backend/pkg/logger"
	"mercato.backend/pkg/utils"
)

// Success writes data as the JSON body.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes {key: items, "pagination": meta}.
func Paginated(c *gin.Context, status int, key string, items interface{}, total int64, page, limit int) {
	c.JSON(status, gin.H{
		key:          items,
		"pagination": utils.NewPageMeta(total, page, limit),
	})
}

// Error maps err onto the {code, message} envelope. Unclassified errors become a 500
// whose cause is logged but never sent to the client.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr == nil {
		appErr = domainerrors.InternalError(nil)
	}
	if appErr.Status >= http.StatusInternalServerError && err != nil {
		logger.Error(c, "Request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
