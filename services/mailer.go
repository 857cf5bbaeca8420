package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Mailer envía correos transaccionales (aprobación/rechazo de negocios)
// por SMTP.
type Mailer struct {
	config *MailConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg *MailConfig) *Mailer {
	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
	}
}

func (m *Mailer) ValidateConfig() error {
	if m.config.Host == "" {
		return fmt.Errorf("mail host is required")
	}
	if m.config.Port == 0 {
		return fmt.Errorf("mail port is required")
	}
	if m.config.User == "" {
		return fmt.Errorf("mail user is required")
	}
	if m.config.From == "" {
		return fmt.Errorf("mail from is required")
	}
	return nil
}

func (m *Mailer) EnviarCorreo(destinatario, asunto, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", destinatario)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/html", html)

	return m.dialer.DialAndSend(msg)
}
