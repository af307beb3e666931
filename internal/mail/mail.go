// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail delivers the digest over SMTP with STARTTLS, or prints it when
// test mode is on. Delivery problems are logged and reported as an Outcome;
// they never abort the run.
package mail

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/arxiv-alerter/internal/config"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// dialTimeout bounds connection setup to the mail relay.
const dialTimeout = 30 * time.Second

// Outcome reports what Dispatch did with the digest.
type Outcome int

const (
	OutcomeSent Outcome = iota
	OutcomePrinted
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomePrinted:
		return "printed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Dispatcher sends one digest per run.
type Dispatcher struct {
	Config types.MailConfig
	Log    logrus.FieldLogger

	// Out receives the digest in test mode.
	Out io.Writer

	// TLSConfig overrides the STARTTLS settings. Nil uses system roots and
	// the server host name.
	TLSConfig *tls.Config

	Now func() time.Time
}

// NewDispatcher returns a Dispatcher printing test-mode output to out.
func NewDispatcher(cfg types.MailConfig, out io.Writer, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{Config: cfg, Log: log, Out: out, Now: time.Now}
}

// Dispatch prints or sends the digest.
func (d *Dispatcher) Dispatch(subject, body string) Outcome {
	if d.Config.TestMode {
		d.Log.Info("TEST_MODE is on; printing the digest instead of sending it")
		fmt.Fprintf(d.Out, "\n===== Subject: %s =====\n\n", subject)
		fmt.Fprintln(d.Out, body)
		fmt.Fprint(d.Out, "\n===== End of digest =====\n\n")
		return OutcomePrinted
	}

	if !d.Config.Complete() {
		d.Log.Warn("mail settings are incomplete; not sending the digest")
		return OutcomeSkipped
	}

	recipients := config.ParseCSV(d.Config.To)
	d.Log.WithField("to", strings.Join(recipients, ", ")).Info("sending digest")

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	msg := BuildMessage(d.Config.From, recipients, subject, body, now())

	if err := d.send(recipients, msg); err != nil {
		d.Log.WithError(err).Error("sending digest failed")
		return OutcomeFailed
	}
	d.Log.Info("digest sent")
	return OutcomeSent
}

func (d *Dispatcher) send(recipients []string, msg []byte) error {
	host := d.Config.Server
	addr := net.JoinHostPort(host, strconv.Itoa(d.Config.Port))

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP handshake with %s: %w", addr, err)
	}
	defer c.Close()

	tlsCfg := d.TLSConfig
	if tlsCfg == nil {
		tlsCfg = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	}
	if err := c.StartTLS(tlsCfg); err != nil {
		return fmt.Errorf("STARTTLS: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", d.Config.User, d.Config.Password, host)); err != nil {
		return fmt.Errorf("SMTP auth: %w", err)
	}
	if err := c.Mail(d.Config.From); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}
	return c.Quit()
}

// BuildMessage renders a UTF-8 plain-text message with a base64 body.
func BuildMessage(from string, to []string, subject, body string, date time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	b.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(body))
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	if encoded != "" {
		b.WriteString(encoded)
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}
