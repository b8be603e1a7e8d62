// Package mailer delivers the branded SmartServe OTP email over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"smartserve-api/config"
)

const dialTimeout = 15 * time.Second

type Mailer struct {
	cfg config.SMTP
}

func New(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP credentials are configured. When false the
// service runs in dev mode and login codes are surfaced in the API response
// instead of being mailed.
func (m *Mailer) Enabled() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// SendOTP mails a one-time login code to the given address.
func (m *Mailer) SendOTP(to, code string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer: SMTP_USER / SMTP_PASSWORD not configured")
	}

	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.Username)
	subject := "Your SmartServe Login Code: " + code
	raw := buildRaw(from, to, subject, plainBody(code), htmlBody(code))

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	// Implicit TLS on 465, STARTTLS otherwise.
	if m.cfg.Port == 465 {
		return m.sendTLS(addr, auth, to, raw)
	}
	return m.sendSTARTTLS(addr, auth, to, raw)
}

func (m *Mailer) sendTLS(addr string, auth smtp.Auth, to string, raw []byte) error {
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("mailer: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	return m.transmit(client, auth, to, raw)
}

func (m *Mailer) sendSTARTTLS(addr string, auth smtp.Auth, to string, raw []byte) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("mailer: dial: %w", err)
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		client.Close()
		return err
	}
	return m.transmit(client, auth, to, raw)
}

func (m *Mailer) transmit(client *smtp.Client, auth smtp.Auth, to string, raw []byte) error {
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.cfg.Username); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

const boundary = "smartserve-otp-boundary"

func buildRaw(from, to, subject, text, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

func plainBody(code string) string {
	return "SmartServe — Login Code\r\n" +
		strings.Repeat("=", 30) + "\r\n\r\n" +
		"Your one-time verification code is: " + code + "\r\n\r\n" +
		"This code expires in 5 minutes.\r\n" +
		"Never share this code with anyone.\r\n\r\n" +
		"— SmartServe Team\r\n"
}

func htmlBody(code string) string {
	year := time.Now().UTC().Year()

	var cells strings.Builder
	for _, d := range code {
		cells.WriteString(`<td style="width:42px;height:50px;background:#f0f4f8;` +
			`border:2px solid #d6dfe8;border-radius:10px;text-align:center;` +
			`vertical-align:middle;font-family:Consolas,'Courier New',monospace;` +
			`font-size:24px;font-weight:700;color:#1b3a5c;">` + string(d) + "</td>\n")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;background:#f2f2f7;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="background:#f2f2f7;">
  <tr><td style="padding:40px 16px;" align="center">
    <table role="presentation" width="460" cellpadding="0" cellspacing="0"
           style="background:#ffffff;border-radius:16px;overflow:hidden;">
      <tr><td style="height:5px;background:#e8652e;"></td></tr>
      <tr><td style="padding:32px 40px 0;" align="center">
        <p style="margin:0;font-size:22px;font-weight:800;color:#1b3a5c;">
          Smart<span style="color:#e8652e;">Serve</span>
        </p>
        <p style="margin:2px 0 0;font-size:11px;color:#8e99a4;font-weight:600;
                  text-transform:uppercase;letter-spacing:1.2px;">Smart Campus Canteen</p>
      </td></tr>
      <tr><td style="padding:24px 40px 0;text-align:center;">
        <p style="margin:0;font-size:15px;color:#555e68;">Your one-time verification code is</p>
      </td></tr>
      <tr><td style="padding:20px 40px 0;" align="center">
        <table role="presentation" cellpadding="0" cellspacing="6"><tr>
%s
        </tr></table>
      </td></tr>
      <tr><td style="padding:18px 40px 0;" align="center">
        <span style="background:#fff3ed;border-radius:20px;padding:6px 16px;
                     font-size:12px;font-weight:700;color:#e8652e;">Expires in 5 minutes</span>
      </td></tr>
      <tr><td style="padding:24px 40px 0;text-align:center;font-size:13px;color:#6b7685;">
        <strong>Security tip:</strong> Never share this code.
        SmartServe staff will never ask for your OTP.
      </td></tr>
      <tr><td style="padding:18px 40px 28px;text-align:center;">
        <p style="margin:0 0 6px;font-size:11px;color:#aab2bc;">This is an automated message. Please do not reply.</p>
        <p style="margin:0;font-size:11px;color:#c5cbd3;">&copy; %d SmartServe &mdash; All rights reserved</p>
      </td></tr>
    </table>
  </td></tr>
</table>
</body>
</html>`, cells.String(), year)
}
