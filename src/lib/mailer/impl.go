package mailer

import (
	"carebook/src/lib"
	"log"
)

// NewMailerMessage dispatches mail on a detached goroutine. Delivery is
// best-effort: failures are logged and never reach the caller, so booking
// and payment flows succeed regardless of SMTP health.
func NewMailerMessage(input *lib.SendMailInput) {
	go func() {
		if err := lib.SendMail(input); err != nil {
			log.Printf("[mailer] Could not deliver %q to %v: %s\n", input.Subject, input.To, err.Error())
		}
	}()
}
