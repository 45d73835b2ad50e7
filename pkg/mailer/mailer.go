package mailer

import (
	"gopkg.in/gomail.v2"

	"wealth-backoffice/pkg/config"
)

// Mailer defines the interface for sending email.
type Mailer interface {
	Send(to []string, subject, htmlBody string) error
	IsConfigured() bool
}

// client is an SMTP implementation of Mailer.
type client struct {
	cfg    config.SMTP
	dialer *gomail.Dialer
}

// NewClient creates a new SMTP mailer. An empty host yields a client that
// reports itself unconfigured and refuses to send.
func NewClient(cfg config.SMTP) Mailer {
	c := &client{cfg: cfg}
	if cfg.Host != "" {
		c.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return c
}

// IsConfigured reports whether an SMTP host has been set.
func (c *client) IsConfigured() bool {
	return c.dialer != nil
}

// Send delivers one HTML email to the given recipients.
func (c *client) Send(to []string, subject, htmlBody string) error {
	if c.dialer == nil {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.FromAddress)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return c.dialer.DialAndSend(m)
}
