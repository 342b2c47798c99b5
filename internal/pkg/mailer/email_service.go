package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCostAlert(toEmail, alertType, dateKey, costUSD, thresholdUSD string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendCostAlert(toEmail, alertType, dateKey, costUSD, thresholdUSD string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Chat Cost Alert: %s", alertType))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>LLM Spend Threshold Exceeded</h2>
			<p>Alert type: <strong>%s</strong></p>
			<p>Period: <strong>%s</strong></p>
			<p>Accumulated cost: <strong>$%s</strong> (threshold $%s)</p>
			<p>Review the cost dashboard and adjust model settings if this is unexpected.</p>
		</div>
	`, alertType, dateKey, costUSD, thresholdUSD)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send cost alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Cost alert sent to %s\n", toEmail)
	return nil
}
