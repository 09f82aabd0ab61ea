// Package mail sends daily verse reminders by email.
package mail

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/taiwoajasa245/march16-verse-api/internal/notification"
)

//go:embed templates/*.html
var templateFS embed.FS

const verseTemplate = "verse.html"

var ErrNoRecipients = errors.New("no recipients configured")

type Config struct {
	FromName   string
	From       string
	Password   string
	Host       string
	Port       int
	Recipients []string
	// Lang is set on the rendered page.
	Lang string
}

type Mailer struct {
	cfg    Config
	client *gomail.Client
	tmpl   *template.Template
	logger *slog.Logger
}

func NewMailer(cfg Config, logger *slog.Logger) (*Mailer, error) {
	if len(cfg.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.From),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(15*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Mailer{cfg: cfg, client: client, tmpl: tmpl, logger: logger}, nil
}

type verseData struct {
	Lang      string
	Title     string
	Date      string
	Body      string
	Reference string
}

func (m *Mailer) message(to string, req notification.Request) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return nil, newRecipientError(m.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, newRecipientError(to, err)
	}
	msg.Subject(req.Title + " · " + req.Reference)
	msg.SetDate()

	data := verseData{
		Lang:      m.cfg.Lang,
		Title:     req.Title,
		Date:      req.FireAt.Format("Monday, January 2"),
		Body:      req.Body,
		Reference: req.Reference,
	}
	if err := msg.SetBodyHTMLTemplate(m.tmpl.Lookup(verseTemplate), data); err != nil {
		return nil, newTemplateError(verseTemplate, err)
	}
	msg.AddAlternativeString(gomail.TypeTextPlain, req.Body+"\n\n"+req.Reference)
	return msg, nil
}

// Deliver mails req to every configured recipient in one SMTP session.
func (m *Mailer) Deliver(ctx context.Context, req notification.Request) error {
	msgs := make([]*gomail.Msg, 0, len(m.cfg.Recipients))
	for _, to := range m.cfg.Recipients {
		msg, err := m.message(to, req)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := m.client.DialAndSendWithContext(ctx, msgs...); err != nil {
		return newNetworkError("send", err)
	}
	m.logger.Info("reminder mailed", "id", req.ID, "recipients", len(msgs))
	return nil
}
