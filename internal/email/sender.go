package email

import "log"

// Sender delivers transactional mail. The default implementation only
// logs; SMTP wiring is a deployment concern.
type Sender interface {
	Send(to, subject, body string) error
}

type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(to, subject, body string) error {
	log.Printf("email to=%s subject=%q", to, subject)
	return nil
}

// WelcomeProvider is sent after provider registration while license
// verification is pending.
func WelcomeProvider(s Sender, to, name string) {
	if err := s.Send(
		to,
		"Welcome to Health First",
		"Hi "+name+", your provider account was created and is pending license verification.",
	); err != nil {
		log.Println("welcome email failed:", err)
	}
}

// WelcomePatient confirms patient registration.
func WelcomePatient(s Sender, to, name string) {
	if err := s.Send(
		to,
		"Welcome to Health First",
		"Hi "+name+", your account is ready. You can book appointments now.",
	); err != nil {
		log.Println("welcome email failed:", err)
	}
}

// BookingConfirmation is sent to the patient after a successful
// booking.
func BookingConfirmation(s Sender, to, providerName, when string) {
	if err := s.Send(
		to,
		"Appointment confirmed",
		"Your appointment with "+providerName+" on "+when+" is confirmed.",
	); err != nil {
		log.Println("booking email failed:", err)
	}
}
