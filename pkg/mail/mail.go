package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// Message 一封纯文本邮件
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender 邮件发送接口
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender 按配置构造底层发送器
func NewSender(cfg config.MailConfig) (Sender, error) {
	switch cfg.Backend {
	case "console", "":
		return ConsoleSender{}, nil
	case "smtp":
		if cfg.Host == "" {
			return nil, errors.New("mail: smtp backend requires host")
		}
		return &SMTPSender{Host: cfg.Host, Port: cfg.Port, Username: cfg.Username, Password: cfg.Password}, nil
	default:
		return nil, fmt.Errorf("mail: unknown backend %q", cfg.Backend)
	}
}

// ConsoleSender 只把邮件写进日志，开发环境使用
type ConsoleSender struct{}

func (ConsoleSender) Send(_ context.Context, msg Message) error {
	logger.Info("mail (console backend)",
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// SMTPSender 通过 SMTP 投递
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	if err := smtp.SendMail(addr, auth, msg.From, msg.To, Render(msg, time.Now())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", addr, err)
	}
	return nil
}

// Render 生成 RFC 5322 格式的邮件正文
func Render(msg Message, date time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return b.Bytes()
}

// Outbox 把邮件保存在内存中的发送器，测试里用来断言发出的内容
type Outbox struct {
	mu       sync.Mutex
	messages []Message
	Err      error
}

func (o *Outbox) Send(_ context.Context, msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.messages = append(o.messages, msg)
	return nil
}

// Messages 返回已发送邮件的副本
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}
