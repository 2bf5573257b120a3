package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendExperienceApprovedEmail(toEmail, toName, experienceTitle string) error
	SendExperienceRejectedEmail(toEmail, toName, experienceTitle, reason string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendExperienceApprovedEmail notifies an author that their experience is live
func (s *EmailServiceImpl) SendExperienceApprovedEmail(toEmail, toName, experienceTitle string) error {
	// Without SMTP credentials the outcome is only logged (development setups)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("experience", experienceTitle).
			Msg("SMTP credentials not configured - approval email not sent")
		return nil
	}

	subject := "Your experience is now live - PlacementPulse"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Your experience was approved!</h2>
				<p>Hello %s,</p>
				<p>Your interview experience <strong>%s</strong> has been reviewed and is now visible to everyone on PlacementPulse.</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s/experiences" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">View Experiences</a>
				</div>

				<p>Thank you for helping fellow students prepare.</p>

				<p>Best regards,<br>The PlacementPulse Team</p>
			</div>
		</body>
		</html>
	`, toName, experienceTitle, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendExperienceRejectedEmail notifies an author that their experience was
// rejected, including the moderator's reason
func (s *EmailServiceImpl) SendExperienceRejectedEmail(toEmail, toName, experienceTitle, reason string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("experience", experienceTitle).
			Str("reason", reason).
			Msg("SMTP credentials not configured - rejection email not sent")
		return nil
	}

	subject := "Update on your submitted experience - PlacementPulse"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Your experience needs changes</h2>
				<p>Hello %s,</p>
				<p>Your interview experience <strong>%s</strong> was reviewed and could not be published as submitted.</p>

				<p>Reviewer feedback:</p>
				<blockquote style="border-left: 3px solid #ccc; margin: 16px 0; padding-left: 12px; color: #555;">%s</blockquote>

				<p>You can revise and submit a new experience at any time.</p>

				<p>Best regards,<br>The PlacementPulse Team</p>
			</div>
		</body>
		</html>
	`, toName, experienceTitle, reason)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
