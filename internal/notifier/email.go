package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"StockSentinel/internal/model"
)

// EmailSubject is the subject line of every alert email.
const EmailSubject = "📈 Stock Alert Triggered"

// EmailNotifier sends alerts over SMTP. Port 465 uses implicit TLS; any other
// port upgrades with STARTTLS when the server offers it.
type EmailNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	// To defaults to Username when empty.
	To      []string
	Timeout time.Duration
	Log     zerolog.Logger
}

// NewEmailNotifier creates an SMTP notifier.
func NewEmailNotifier(host string, port int, username, password string, to []string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		To:       to,
		Timeout:  30 * time.Second,
		Log:      log,
	}
}

func (e *EmailNotifier) Name() string { return "email" }

func (e *EmailNotifier) recipients() []string {
	if len(e.To) == 0 {
		return []string{e.Username}
	}
	return e.To
}

// BuildMessage renders the alert email for rows.
func (e *EmailNotifier) BuildMessage(rows []model.NotifierRow) (*mail.Msg, error) {
	m := mail.NewMsg(mail.WithEncoding(mail.NoEncoding))
	if err := m.From(e.Username); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(e.recipients()...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	m.Subject(EmailSubject)
	m.SetBodyString(mail.TypeTextPlain, FormatEmailBody(rows))
	return m, nil
}

func (e *EmailNotifier) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(e.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.Username),
		mail.WithPassword(e.Password),
		mail.WithTimeout(e.Timeout),
	}
	if e.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(e.Host, opts...)
}

// Notify sends one email listing every triggered row.
func (e *EmailNotifier) Notify(ctx context.Context, rows []model.NotifierRow) error {
	m, err := e.BuildMessage(rows)
	if err != nil {
		return err
	}
	c, err := e.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send email via %s:%d: %w", e.Host, e.Port, err)
	}
	e.Log.Debug().Strs("to", e.recipients()).Int("alerts", len(rows)).Msg("email delivered")
	return nil
}
