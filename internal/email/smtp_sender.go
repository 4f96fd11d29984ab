package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender envia correos via SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	useTLS   bool
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, useTLS bool) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		useTLS:   useTLS,
	}, nil
}

func (s *SMTPSender) SendRequestReceived(_ context.Context, notice RequestNotice) error {
	subject, body := requestReceivedContent(notice)
	return s.send(notice.ToEmail, subject, body)
}

func (s *SMTPSender) SendRequestDecision(_ context.Context, notice DecisionNotice) error {
	subject, body := requestDecisionContent(notice)
	return s.send(notice.ToEmail, subject, body)
}

func (s *SMTPSender) send(toEmail, subject, body string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}

	msg := buildMessage(s.from, s.fromName, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if s.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{
			ServerName: s.host,
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if auth != nil {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
		if err := client.Mail(s.from); err != nil {
			return err
		}
		if err := client.Rcpt(toEmail); err != nil {
			return err
		}
		writer, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := writer.Write([]byte(msg)); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	}

	return smtp.SendMail(addr, auth, s.from, []string{toEmail}, []byte(msg))
}

func requestReceivedContent(n RequestNotice) (string, string) {
	subject := fmt.Sprintf("New collaboration request from %s", n.InitiatorName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", n.ToName)
	fmt.Fprintf(&b, "%s", n.InitiatorName)
	if n.InitiatorEnterprise != "" {
		fmt.Fprintf(&b, " (%s)", n.InitiatorEnterprise)
	}
	fmt.Fprintf(&b, " would like to collaborate with you.\n")
	fmt.Fprintf(&b, "Match type: %s\n", n.TierName)
	if len(n.MatchedCategories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(n.MatchedCategories, ", "))
	}
	fmt.Fprintf(&b, "Request id: %s\n", n.RequestID)
	return subject, b.String()
}

func requestDecisionContent(n DecisionNotice) (string, string) {
	subject := fmt.Sprintf("Your collaboration request was %s", n.Decision)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", n.ToName)
	fmt.Fprintf(&b, "%s has %s your collaboration request %s.\n", n.TargetName, n.Decision, n.RequestID)
	if n.CollaborationID != "" {
		fmt.Fprintf(&b, "Collaboration id: %s\n", n.CollaborationID)
	}
	return subject, b.String()
}

func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
