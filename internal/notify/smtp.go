package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// SMTPConfig holds the relay settings for SMTPSender
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends emails through a plain SMTP relay with STARTTLS
type SMTPSender struct {
	cfg      SMTPConfig
	from     Sender
	logger   *zap.Logger
	sendMail sendMailFunc
}

func NewSMTPSender(cfg SMTPConfig, from Sender, logger *zap.Logger) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg, from: from, logger: logger, sendMail: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.from.Email, []string{msg.To}, buildMIME(s.from, msg, time.Now())); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	s.logger.Info("email sent via smtp",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

func buildMIME(from Sender, msg Message, now time.Time) []byte {
	var buf bytes.Buffer
	fromHeader := from.Email
	if from.Name != "" {
		fromHeader = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", from.Name), from.Email)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", fromHeader)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if msg.HTML != "" {
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.HTML)
	} else {
		buf.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.Text)
	}
	return buf.Bytes()
}

var _ EmailSender = (*SMTPSender)(nil)
