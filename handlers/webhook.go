package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookline/services/dialog"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// stepTimeout bounds one dialogue step including the external store and
// notifier calls made on commit.
const stepTimeout = 20 * time.Second

// WebhookHandler receives inbound messages from the messaging transport
// (Twilio-style form POST) and answers with exactly one XML-enveloped reply.
type WebhookHandler struct {
	dialog dialog.Service
	logger *zap.Logger
}

func NewWebhookHandler(svc dialog.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{dialog: svc, logger: logger}
}

// HandleInbound processes one inbound message. A missing sender identifier
// is a contract violation by the transport and is rejected before the
// dialogue engine sees it; a dialogue failure becomes the generic failure
// reply so the transport always gets its response.
func (h *WebhookHandler) HandleInbound(c *gin.Context) {
	sender := strings.TrimSpace(c.PostForm("From"))
	body := c.PostForm("Body")

	if sender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing sender identifier"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), stepTimeout)
	defer cancel()

	reply, err := h.dialog.HandleMessage(ctx, sender, body)
	if err != nil {
		h.logger.Error("Dialogue step failed",
			zap.String("sender", sender), zap.Error(err))
		reply = utils.GenericFailureReply
	}

	c.Data(http.StatusOK, "text/xml", []byte(utils.MessageEnvelope(reply)))
}
