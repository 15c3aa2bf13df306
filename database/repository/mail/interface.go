// File: database/repository/mail/interface.go
package mailRepo

import (
	"context"

	"gebedsrooster/models"
)

// MailRepository queues outgoing mail. The mail extension watching the
// collection does the actual delivery.
type MailRepository interface {
	Add(ctx context.Context, mail models.MailRequest) (string, error)
}
