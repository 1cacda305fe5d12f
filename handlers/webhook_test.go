package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bookline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubDialog struct {
	reply string
	err   error

	sender string
	body   string
}

func (s *stubDialog) HandleMessage(_ context.Context, sender, body string) (string, error) {
	s.sender = sender
	s.body = body
	return s.reply, s.err
}

func newWebhookRouter(svc *stubDialog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWebhookHandler(svc, zap.NewNop())
	r.POST("/webhook", h.HandleInbound)
	return r
}

func postWebhook(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRepliesInXMLEnvelope(t *testing.T) {
	svc := &stubDialog{reply: "Please enter your full name:"}
	r := newWebhookRouter(svc)

	w := postWebhook(r, url.Values{"From": {"whatsapp:+1555"}, "Body": {"Jane"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Errorf("content-type = %q, want text/xml", ct)
	}
	want := "<Response><Message>Please enter your full name:</Message></Response>"
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
	if svc.sender != "whatsapp:+1555" || svc.body != "Jane" {
		t.Errorf("dialogue got sender=%q body=%q", svc.sender, svc.body)
	}
}

func TestWebhookMissingSenderIsRejected(t *testing.T) {
	svc := &stubDialog{reply: "unused"}
	r := newWebhookRouter(svc)

	w := postWebhook(r, url.Values{"Body": {"hi"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if svc.sender != "" {
		t.Errorf("dialogue engine was invoked without a sender")
	}
}

func TestWebhookEngineFailureYieldsGenericReply(t *testing.T) {
	svc := &stubDialog{err: errors.New("store unreachable")}
	r := newWebhookRouter(svc)

	w := postWebhook(r, url.Values{"From": {"U1"}, "Body": {"no"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (transport expects a reply)", w.Code)
	}
	want := utils.MessageEnvelope(utils.GenericFailureReply)
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}

func TestWebhookEscapesReplyText(t *testing.T) {
	svc := &stubDialog{reply: "pick a slot < 16:00 & reply"}
	r := newWebhookRouter(svc)

	w := postWebhook(r, url.Values{"From": {"U1"}, "Body": {"x"}})

	want := "<Response><Message>pick a slot &lt; 16:00 &amp; reply</Message></Response>"
	if w.Body.String() != want {
		t.Errorf("body = %q, want %q", w.Body.String(), want)
	}
}
