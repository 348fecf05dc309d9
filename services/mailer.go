package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/teerapatch/rodhai/config"
)

// Mailer sends transactional email. Kept as an interface so tests can swap
// in a recorder instead of hitting Mailgun.
type Mailer interface {
	SendOTP(recipient, code string) error
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	Sender string
}

func NewMailgun(conf *config.Config) *Mailgun {
	return &Mailgun{
		Client: mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey),
		Sender: conf.MgEmailFrom,
	}
}

// SendOTP mails a one-time login code. The code expires server-side; the
// message only tells the user how long they have.
func (m *Mailgun) SendOTP(recipient, code string) error {
	subject := "Your sign-in code"
	body := fmt.Sprintf("Your one-time sign-in code is %s. It expires in 10 minutes.", code)

	message := m.Client.NewMessage(m.Sender, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	resp, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return err
	}
	log.Printf("OTP mail queued: id=%s resp=%s", id, resp)
	return nil
}
