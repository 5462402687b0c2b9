package pkg

import (
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

// Mailer 发信接口，便于测试时替换
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer 基于 gomail 的 SMTP 发信
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return SendEmail(m.cfg, to, subject, htmlBody)
}

func NewMessage(from, to, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return m
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := NewMessage(cfg.From, to, subject, htmlBody)
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(m)
}

// TokenLinkHTML 带令牌链接的邮件正文
func TokenLinkHTML(username, action, link string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>Dear %s,</p><p>To %s, please click <a href="%s">this link</a>.</p><p>The link expires in %d minutes.</p>`,
		template.HTMLEscapeString(username),
		template.HTMLEscapeString(action),
		template.HTMLEscapeString(link),
		int(ttl.Minutes()))
}
