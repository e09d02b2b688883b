// Package mailer delivers order confirmations over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// ErrNoRecipient is returned when the customer has no email address.
var ErrNoRecipient = errors.New("recipient email is empty")

// Options configure the SMTP relay.
type Options struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	StoreName string
}

func (o Options) addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// Mailer sends rendered confirmations through an SMTP relay.
type Mailer struct {
	opts     Options
	renderer *Renderer
	dial     func(ctx context.Context, network, addr string) (net.Conn, error)
	now      func() time.Time
}

func New(opts Options) (*Mailer, error) {
	if _, err := mail.ParseAddress(opts.From); err != nil {
		return nil, fmt.Errorf("parse sender %q: %w", opts.From, err)
	}
	var d net.Dialer
	return &Mailer{
		opts:     opts,
		renderer: NewRenderer(opts.StoreName, opts.From),
		dial:     d.DialContext,
		now:      time.Now,
	}, nil
}

func (m *Mailer) Channel() string {
	return "email"
}

// Render builds the message for a confirmation without sending it.
func (m *Mailer) Render(job model.OrderConfirmation) (*Message, error) {
	return m.renderer.Render(job)
}

// Send renders the confirmation and hands it to the relay.
func (m *Mailer) Send(ctx context.Context, job model.OrderConfirmation) error {
	if job.Customer.Email == "" {
		return ErrNoRecipient
	}
	msg, err := m.renderer.Render(job)
	if err != nil {
		return err
	}
	return m.Deliver(ctx, msg)
}

// Deliver runs one SMTP session: STARTTLS when offered, AUTH when credentials are set.
func (m *Mailer) Deliver(ctx context.Context, msg *Message) error {
	raw, err := msg.Bytes(m.now())
	if err != nil {
		return err
	}
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("parse sender: %w", err)
	}
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("parse recipient: %w", err)
	}

	conn, err := m.dial(ctx, "tcp", m.opts.addr())
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.opts.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.opts.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if m.opts.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", m.opts.Username, m.opts.Password, m.opts.Host)); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := c.Mail(from.Address); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to.Address); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return c.Quit()
}
