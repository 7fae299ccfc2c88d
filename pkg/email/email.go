package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"hosteria-web/config"

	"github.com/wneessen/go-mail"
)

const senderName = "Web Hosteria"

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	toEmail   string
	timeout   time.Duration
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Phone       string
	Message     string
}

// RenderedEmail is a contact notification ready to be put on the wire
type RenderedEmail struct {
	Subject string
	Text    string
	HTML    string
}

// NewEmailService creates a new email service from the SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPUsername, // The relay only accepts the login account as sender
		toEmail:   cfg.SMTPTo,
		timeout:   time.Duration(cfg.OutboundTimeoutSeconds) * time.Second,
	}
}

// contactEmailTemplate is the HTML template for contact form emails
var contactEmailTemplate = template.Must(template.New("contact").Funcs(template.FuncMap{
	"lines": splitLines,
}).Parse(`<h3>Nueva Consulta Web</h3>
<p><strong>Nombre:</strong> {{.SenderName}}</p>
<p><strong>Email:</strong> {{.SenderEmail}}</p>
<p><strong>Teléfono:</strong> {{.Phone}}</p>
<hr/>
<p><strong>Mensaje:</strong></p>
<p>{{range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
`))

// RenderContactEmail builds the subject and both bodies of a contact notification.
// User input is escaped in the HTML body; newlines become <br>.
func RenderContactEmail(data ContactEmailData) (*RenderedEmail, error) {
	var body bytes.Buffer
	if err := contactEmailTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	return &RenderedEmail{
		Subject: fmt.Sprintf("Nueva Consulta de: %s", data.SenderName),
		Text: fmt.Sprintf("Nombre: %s\nEmail: %s\nTel: %s\n\nMensaje:\n%s",
			data.SenderName, data.SenderEmail, data.Phone, data.Message),
		HTML: body.String(),
	}, nil
}

// SendContactEmail sends a contact form email to the configured recipient
func (s *EmailService) SendContactEmail(ctx context.Context, data ContactEmailData) error {
	rendered, err := RenderContactEmail(data)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(senderName, s.fromEmail); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(s.toEmail); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if err := msg.ReplyTo(data.SenderEmail); err != nil {
		return fmt.Errorf("invalid reply-to address: %w", err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rendered.HTML)

	client, err := mail.NewClient(s.host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}

func (s *EmailService) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
	}
	if s.timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.timeout))
	}
	// 465 is implicit TLS; everything else upgrades with STARTTLS when offered
	if s.port == 465 {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSOpportunistic))
	}
	return opts
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
