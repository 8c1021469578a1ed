// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hearsaylabs/revuloop-go/internal/application/services"
	"github.com/hearsaylabs/revuloop-go/internal/domain/dialogue"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/logging"
	"github.com/hearsaylabs/revuloop-go/internal/infrastructure/observability/performance"
)

// WebhookHandlers contains the inbound messaging provider callbacks
type WebhookHandlers struct {
	dialogueService *services.DialogueService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

// NewWebhookHandlers creates webhook handlers with injected dependencies
func NewWebhookHandlers(dialogueService *services.DialogueService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *WebhookHandlers {
	return &WebhookHandlers{
		dialogueService: dialogueService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// twimlResponse is the provider reply envelope: a single outbound message.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// PostWhatsApp handles POST /webhook/whatsapp - inbound WhatsApp messages
// relayed by Twilio as form fields From (phone number) and Body (text).
func (h *WebhookHandlers) PostWhatsApp(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("webhook:whatsapp")
	defer marker.Complete()

	from := c.PostForm("From")
	body := c.PostForm("Body")

	if from == "" {
		h.logger.Webhook().Error("Webhook request missing From field", "path", c.Request.URL.Path)
		marker.SetSuccess(false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "From field required"})
		return
	}

	log := h.logger.WithContact(logging.ChannelWebhook, from)
	log.Debug("Received inbound message", "bodyLength", len(body))

	reply, err := h.dialogueService.HandleMessage(from, body)
	if err != nil {
		// Twilio retries on non-2xx; answer 200 with an apology so the user
		// is told once and can simply resend their message.
		log.Error("Dialogue processing failed", "error", err.Error(), "duration", time.Since(start))
		marker.SetError(err)
		h.writeTwiML(c, dialogue.ApologyUnavailable)
		return
	}

	log.Info("Outbound reply sent", "replyLength", len(reply), "duration", time.Since(start))
	marker.SetSuccess(true)
	h.logger.Perf().Debug("Performance for PostWhatsApp request", "duration", marker.Duration, "success", true)

	h.writeTwiML(c, reply)
}

// writeTwiML encodes the reply in the provider's XML envelope. Marshalling
// rather than string interpolation keeps interpolated user input escaped.
func (h *WebhookHandlers) writeTwiML(c *gin.Context, message string) {
	out, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		h.logger.Webhook().Error("Failed to encode TwiML response", "error", err.Error())
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
