// Package mailer sends generated posters as email attachments over
// SMTP with STARTTLS.
package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

const (
	defaultHost = "smtp.office365.com"
	defaultPort = 587
)

// Attachment is one poster PNG to attach.
type Attachment struct {
	Filename string
	Data     []byte
}

// Mailer sends mail on behalf of a single sender account.
type Mailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// New returns a mailer with Office365 defaults.
func New(sender, password string) *Mailer {
	return &Mailer{Host: defaultHost, Port: defaultPort, Sender: sender, Password: password}
}

// SendBirthday mails today's birthday posters. No posters or no
// recipients is a no-op, not an error.
func (m *Mailer) SendBirthday(posters []Attachment, to, cc []string, on time.Time) error {
	if len(posters) == 0 || len(to) == 0 {
		return nil
	}
	subject := "Birthday Greetings - " + on.Format("02 January 2006")
	body := "Please find attached the birthday greeting poster(s) for today."
	return m.Send(to, cc, subject, body, posters)
}

// SendAnniversary mails today's work-anniversary posters.
func (m *Mailer) SendAnniversary(posters []Attachment, to, cc []string, on time.Time) error {
	if len(posters) == 0 || len(to) == 0 {
		return nil
	}
	subject := "Work Anniversary Greetings - " + on.Format("02 January 2006")
	body := "Please find attached the work anniversary greeting poster(s) for today."
	return m.Send(to, cc, subject, body, posters)
}

// Send delivers one message with attachments to all recipients.
func (m *Mailer) Send(to, cc []string, subject, body string, attachments []Attachment) error {
	if m.Sender == "" || m.Password == "" {
		return fmt.Errorf("mailer: sender credentials are not configured")
	}
	msg, err := BuildMessage(m.Sender, to, cc, subject, body, attachments)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)
	recipients := append(append([]string{}, to...), cc...)
	if err := smtp.SendMail(addr, auth, m.Sender, recipients, msg); err != nil {
		return fmt.Errorf("mailer: send via %s: %w", addr, err)
	}
	return nil
}

// BuildMessage assembles a multipart/mixed MIME message.
func BuildMessage(from string, to, cc []string, subject, body string, attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	headers := &bytes.Buffer{}
	fmt.Fprintf(headers, "From: %s\r\n", from)
	fmt.Fprintf(headers, "To: %s\r\n", strings.Join(to, ", "))
	if len(cc) > 0 {
		fmt.Fprintf(headers, "Cc: %s\r\n", strings.Join(cc, ", "))
	}
	fmt.Fprintf(headers, "Subject: %s\r\n", subject)
	headers.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(headers, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, fmt.Errorf("mailer: build body: %w", err)
	}
	if _, err := part.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("mailer: build body: %w", err)
	}

	for _, att := range attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", "image/png")
		h.Set("Content-Transfer-Encoding", "base64")
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("mailer: attach %s: %w", att.Filename, err)
		}
		if _, err := part.Write(wrapBase64(att.Data)); err != nil {
			return nil, fmt.Errorf("mailer: attach %s: %w", att.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("mailer: finalize message: %w", err)
	}

	return append(headers.Bytes(), buf.Bytes()...), nil
}

// wrapBase64 encodes data with the 76-column line breaks SMTP expects.
func wrapBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)
	var out bytes.Buffer
	for len(encoded) > 76 {
		out.WriteString(encoded[:76])
		out.WriteString("\r\n")
		encoded = encoded[76:]
	}
	out.WriteString(encoded)
	return out.Bytes()
}
