package utils

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenericFailureReply is the user-facing text for any unrecoverable failure.
const GenericFailureReply = "Something went wrong. Try again."

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// MessageEnvelope wraps reply text in the messaging transport's fixed XML
// response format.
func MessageEnvelope(text string) string {
	return fmt.Sprintf("<Response><Message>%s</Message></Response>", xmlEscaper.Replace(text))
}

// ErrorHandler is a middleware that catches panics. Webhook requests get the
// generic failure reply in the XML envelope so the messaging transport still
// receives exactly one response; everything else gets a JSON error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				if strings.HasPrefix(c.Request.URL.Path, "/webhook") {
					c.Data(http.StatusOK, "text/xml", []byte(MessageEnvelope(GenericFailureReply)))
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{
						"message": "Internal Server Error",
						"details": "An unexpected error occurred. Please try again later.",
					})
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
