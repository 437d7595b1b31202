package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/artermis-ops/agency-mcp/internal/models"
)

// mailUser is the authenticated mailbox; the Gmail API resolves "me" to the
// credential owner.
const mailUser = "me"

// noBodyPlaceholder is returned when a message has no decodable text part.
const noBodyPlaceholder = "(no body available)"

// MailService wraps the Gmail API for listing, reading and sending messages.
type MailService struct {
	svc      *gmail.Service
	attempts int
}

func NewMailService(ctx context.Context, client *http.Client, attempts int) (*MailService, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService: %w", err)
	}
	return &MailService{svc: svc, attempts: attempts}, nil
}

// ListMessages returns up to limit inbox messages with Subject and From
// headers, preserving the API's ordering. One metadata fetch per message.
func (s *MailService) ListMessages(ctx context.Context, limit int64) ([]models.EmailSummary, error) {
	var list *gmail.ListMessagesResponse
	err := withRetry(ctx, s.attempts, func() error {
		var err error
		list, err = s.svc.Users.Messages.List(mailUser).MaxResults(limit).Context(ctx).Do()
		return classifyGoogleErr(err)
	})
	if err != nil {
		return nil, &models.UpstreamError{Service: "gmail", Err: fmt.Errorf("list messages: %w", err)}
	}

	out := make([]models.EmailSummary, 0, len(list.Messages))
	for _, m := range list.Messages {
		var msg *gmail.Message
		err := withRetry(ctx, s.attempts, func() error {
			var err error
			msg, err = s.svc.Users.Messages.Get(mailUser, m.Id).
				Format("metadata").
				MetadataHeaders("Subject", "From").
				Context(ctx).Do()
			return classifyGoogleErr(err)
		})
		if err != nil {
			return nil, &models.UpstreamError{Service: "gmail", Err: fmt.Errorf("get message %s: %w", m.Id, err)}
		}
		out = append(out, models.EmailSummary{
			ID:      m.Id,
			Subject: headerValue(msg, "Subject"),
			From:    headerValue(msg, "From"),
		})
	}
	return out, nil
}

// GetMessage returns the decoded body and snippet of one message.
func (s *MailService) GetMessage(ctx context.Context, id string) (*models.ReadEmailResponse, error) {
	var msg *gmail.Message
	err := withRetry(ctx, s.attempts, func() error {
		var err error
		msg, err = s.svc.Users.Messages.Get(mailUser, id).Format("full").Context(ctx).Do()
		return classifyGoogleErr(err)
	})
	if err != nil {
		return nil, &models.UpstreamError{Service: "gmail", Err: fmt.Errorf("get message %s: %w", id, err)}
	}

	body := extractBody(msg.Payload)
	if body == "" {
		body = noBodyPlaceholder
	}
	return &models.ReadEmailResponse{Body: body, Snippet: msg.Snippet}, nil
}

// Send builds an RFC 2822 message, encodes it as the API's raw payload and
// submits it. Sends are not retried.
func (s *MailService) Send(ctx context.Context, to, subject, body string) error {
	raw := EncodeMessage(to, subject, body)
	_, err := s.svc.Users.Messages.Send(mailUser, &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return &models.UpstreamError{Service: "gmail", Err: fmt.Errorf("send message: %w", err)}
	}
	return nil
}

// EncodeMessage constructs the base64url-encoded RFC 2822 message the Gmail
// send API expects.
func EncodeMessage(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

// extractBody prefers a decodable text/plain part anywhere in the MIME tree;
// only when none exists does it fall back to the top-level body. The fallback
// must not run during the walk, or an earlier text/html sibling would shadow
// a later text/plain part.
func extractBody(p *gmail.MessagePart) string {
	if p == nil {
		return ""
	}
	if s := findPlainText(p); s != "" {
		return s
	}
	if p.Body != nil && p.Body.Data != "" {
		if s, ok := decodeBase64URL(p.Body.Data); ok {
			return s
		}
	}
	return ""
}

func findPlainText(p *gmail.MessagePart) string {
	if p == nil {
		return ""
	}
	if strings.HasPrefix(p.MimeType, "text/plain") && p.Body != nil && p.Body.Data != "" {
		if s, ok := decodeBase64URL(p.Body.Data); ok {
			return s
		}
	}
	for _, part := range p.Parts {
		if s := findPlainText(part); s != "" {
			return s
		}
	}
	return ""
}

// decodeBase64URL accepts both padded and unpadded base64url, which the API
// mixes freely.
func decodeBase64URL(data string) (string, bool) {
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(b), true
	}
	if b, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(b), true
	}
	return "", false
}

func headerValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
