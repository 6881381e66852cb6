package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Config параметры SMTP сервера
type Config struct {
	Enabled   bool
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// Message письмо в формате HTML
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender отправляет письма через SMTP.
// Если отправка выключена, письмо только пишется в лог.
type Sender struct {
	cfg    Config
	logger Logger
	now    func() time.Time
}

// NewSender создает новый SMTP отправитель
func NewSender(cfg Config, logger Logger) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Sender{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Send отправляет одно письмо, без повторных попыток
func (s *Sender) Send(ctx context.Context, msg Message) error {
	to := sanitizeHeader(msg.To)
	if to == "" {
		return fmt.Errorf("%w: empty recipient", ErrInvalidMessage)
	}

	if !s.cfg.Enabled || s.cfg.Host == "" {
		s.logger.Info("[MOCK EMAIL] to=%s subject=%q", to, sanitizeHeader(msg.Subject))
		return nil
	}

	body := s.buildMessage(to, msg)

	if err := s.deliver(ctx, to, body); err != nil {
		s.logger.Error("Mail: failed to send to %s: %v", to, err)
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	s.logger.Info("Mail: sent to %s", to)
	return nil
}

func (s *Sender) deliver(ctx context.Context, to string, body []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	dialer := &net.Dialer{Timeout: s.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}

	return client.Quit()
}

func (s *Sender) buildMessage(to string, msg Message) []byte {
	from := sanitizeHeader(s.cfg.FromEmail)
	if name := sanitizeHeader(s.cfg.FromName); name != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), from)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", sanitizeHeader(msg.Subject)))
	fmt.Fprintf(&b, "Date: %s\r\n", s.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(crlfReplacer.Replace(strings.ReplaceAll(msg.HTMLBody, "\r\n", "\n")))
	b.WriteString("\r\n")

	return b.Bytes()
}

var crlfReplacer = strings.NewReplacer("\n", "\r\n")

// sanitizeHeader убирает переводы строк, чтобы нельзя было дописать заголовки
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
