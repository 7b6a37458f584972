// Package mail renders transactional emails and hands them to the event bus.
package mail

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/metrics"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const publishTimeout = 10 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

// Payload is the body of an email.send event.
type Payload struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	HTML     string `json:"html"`
}

// Notifier renders templates and publishes the result in the background.
// Failures are logged and counted, never returned.
type Notifier struct {
	enabled   bool
	from      string
	siteName  string
	templates *template.Template
	publisher service.EventPublisher
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// Params defines the dependencies of the notifier
type Params struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// New builds the notifier and waits for in-flight sends on shutdown.
func New(params Params) (service.Notifier, error) {
	notifier, err := NewNotifier(params.Config, params.Publisher, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return notifier.Wait(ctx)
		},
	})

	return notifier, nil
}

// NewNotifier parses the embedded templates.
func NewNotifier(cfg *config.Config, publisher service.EventPublisher, logger *slog.Logger) (*Notifier, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}

	notifier := &Notifier{
		templates: templates,
		publisher: publisher,
		logger:    logger,
		siteName:  "Storefront",
	}
	if cfg.Mail != nil {
		notifier.enabled = cfg.Mail.Enabled
		notifier.from = cfg.Mail.From
		if cfg.Mail.SiteName != "" {
			notifier.siteName = cfg.Mail.SiteName
		}
	}

	return notifier, nil
}

// Send renders msg now and publishes it on a background goroutine.
func (n *Notifier) Send(ctx context.Context, msg *service.EmailMessage) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger).With(
		slog.String("template", msg.Template),
	)

	if !n.enabled {
		logger.DebugContext(ctx, "Mail disabled, skipping email")

		return
	}
	if !validAddress(msg.To) {
		n.fail(ctx, logger, msg.Template, errors.Errorf("bad recipient header %q", msg.To))

		return
	}

	body, err := n.render(msg)
	if err != nil {
		n.fail(ctx, logger, msg.Template, err)

		return
	}

	event := &service.Event{
		ID:        uuid.NewString(),
		Type:      constants.EventTypeEmail,
		Key:       msg.To,
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Payload: Payload{
			From:     n.from,
			To:       msg.To,
			Subject:  msg.Subject,
			Template: msg.Template,
			HTML:     body,
		},
	}

	// The request may finish before the publish does.
	publishCtx := context.WithoutCancel(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(publishCtx, publishTimeout)
		defer cancel()

		if err := n.publisher.Publish(ctx, event); err != nil {
			n.fail(ctx, logger, msg.Template, err)

			return
		}

		metrics.EmailsPublishedTotal.WithLabelValues(msg.Template, metrics.ResultSuccess).Inc()
		logger.InfoContext(ctx, "Email queued", slog.String("event_id", event.ID))
	}()
}

// Wait blocks until every background send has finished or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for email sends")
	}
}

func (n *Notifier) render(msg *service.EmailMessage) (string, error) {
	data := make(map[string]any, len(msg.Data)+1)
	data["SiteName"] = n.siteName
	maps.Copy(data, msg.Data)

	var buf bytes.Buffer
	if err := n.templates.ExecuteTemplate(&buf, msg.Template+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to render template %s", msg.Template)
	}

	return buf.String(), nil
}

func (n *Notifier) fail(ctx context.Context, logger *slog.Logger, templateName string, err error) {
	metrics.EmailsPublishedTotal.WithLabelValues(templateName, metrics.ResultFailure).Inc()
	logger.WarnContext(ctx, "Email not sent", slog.Any("error", err))
}

// validAddress rejects empty recipients and header injection.
func validAddress(addr string) bool {
	return strings.Contains(addr, "@") && !strings.ContainsAny(addr, "\r\n")
}
