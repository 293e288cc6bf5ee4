// Package mailer delivers verification codes.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/dmitrijs2005/psychicstar/internal/logging"
)

const (
	KindLog  = "log"
	KindSMTP = "smtp"
)

var ErrDispatchFailed = errors.New("verification email dispatch failed")

type Dispatcher interface {
	Send(ctx context.Context, to, code string) error
}

// LogDispatcher writes the code to the log instead of sending it.
type LogDispatcher struct {
	log logging.Logger
}

func NewLogDispatcher(log logging.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	d.log.Info(ctx, "verification code issued", "email", to, "code", code)
	return nil
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPDispatcher struct {
	from   string
	dialer sender
}

func NewSMTPDispatcher(c SMTPConfig) (*SMTPDispatcher, error) {
	if c.Host == "" || c.From == "" {
		return nil, errors.New("smtp host and sender address are required")
	}
	return &SMTPDispatcher{
		from:   c.From,
		dialer: gomail.NewDialer(c.Host, c.Port, c.Username, c.Password),
	}, nil
}

func (d *SMTPDispatcher) message(to, code string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your Psychic Star verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is %s.\n\nEnter it in the app to confirm your email.", code))
	m.AddAlternative("text/html", fmt.Sprintf("<p>Your verification code is <b>%s</b>.</p><p>Enter it in the app to confirm your email.</p>", code))
	return m
}

func (d *SMTPDispatcher) Send(ctx context.Context, to, code string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	if err := d.dialer.DialAndSend(d.message(to, code)); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	return nil
}
