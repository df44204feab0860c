package report

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Emailer delivers rendered reports over SMTP with screenshots embedded
// as inline images.
type Emailer struct {
	log  *slog.Logger
	cfg  SMTPConfig
	dial func(m ...*gomail.Message) error
}

// NewEmailer returns an Emailer. It fails when the SMTP settings are
// incomplete so a misconfigured run is caught before rendering.
func NewEmailer(log *slog.Logger, cfg SMTPConfig) (*Emailer, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("email: smtp host, username and password are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &Emailer{
		log:  log,
		cfg:  cfg,
		dial: dialer.DialAndSend,
	}, nil
}

// Send mails the HTML report to the recipients. cidMap links each
// inline Content-ID referenced by the HTML to an image file on disk.
func (e *Emailer) Send(subject, html string, cidMap map[string]string, recipients []string) error {
	const opn = "report.Emailer.Send"

	if len(recipients) == 0 {
		return fmt.Errorf("%s: no recipients", opn)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", e.cfg.From)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	for cid, path := range cidMap {
		msg.Embed(path, gomail.Rename(cid))
	}

	if err := e.dial(msg); err != nil {
		return fmt.Errorf("%s: failed to send: %w", opn, err)
	}

	e.log.Info("report email sent", "recipients", len(recipients), "inline_images", len(cidMap))

	return nil
}
