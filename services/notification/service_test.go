package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	mailRepo "gebedsrooster/database/repository/mail"
	"gebedsrooster/metrics"
	"gebedsrooster/models"
	"gebedsrooster/utils"
)

const from = "Gebedsmarathon <noreply@gebedsmarathon.nl>"

func newService(t *testing.T) (*DefaultNotificationService, *mailRepo.MemoryMailRepo) {
	t.Helper()
	utils.SetLogger(zaptest.NewLogger(t))
	repo := mailRepo.NewMemoryMailRepo()
	ams, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	svc, err := NewDefaultNotificationService(repo, from, ams, metrics.New())
	require.NoError(t, err)
	svc.Now = func() time.Time { return time.Date(2020, 3, 5, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestReminderMailUsesLocalHour(t *testing.T) {
	svc, repo := newService(t)

	reg := models.Registration{
		ID:    "r1",
		Name:  "Jan <de> Vries",
		Email: "jan@example.nl",
		// 13:00 UTC is 14:00 in Amsterdam in March.
		Date: time.Date(2020, 3, 6, 13, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.SendRegistrationReminder(context.Background(), reg))

	sent := repo.Sent()
	require.Len(t, sent, 1)
	mail := sent[0]
	assert.Equal(t, from, mail.From)
	assert.Equal(t, []string{"jan@example.nl"}, mail.To)
	assert.Equal(t, TemplateRegistrationReminder, mail.Message.MessageID)
	assert.Equal(t, "Een herinnering voor morgen", mail.Message.Subject)
	assert.Contains(t, mail.Message.Text, "morgen om 14.00 uur")
	assert.Contains(t, mail.Message.HTML, "<strong>14.00 uur</strong>")
	assert.Contains(t, mail.Message.HTML, "Jan &lt;de&gt; Vries")
	assert.Equal(t, svc.Now(), mail.CreatedAt)
}

func TestReminderWithoutEmailFails(t *testing.T) {
	svc, repo := newService(t)
	err := svc.SendRegistrationReminder(context.Background(), models.Registration{ID: "r1"})
	assert.Error(t, err)
	assert.Empty(t, repo.Sent())
}

func TestAccountAndResetMails(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendAccountCreated(ctx, models.User{UID: "u1", Email: "a@b.nl"}))
	require.NoError(t, svc.SendPasswordReset(ctx, "a@b.nl", "https://example.test/reset?oobCode=abc"))

	sent := repo.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, TemplateAccountCreated, sent[0].Message.MessageID)
	assert.Contains(t, sent[0].Message.Text, "Beste a@b.nl")
	assert.Equal(t, TemplatePasswordReset, sent[1].Message.MessageID)
	assert.Contains(t, sent[1].Message.Text, "oobCode=abc")
}

func TestConstructorRequiresRepo(t *testing.T) {
	_, err := NewDefaultNotificationService(nil, from, nil, nil)
	assert.Error(t, err)
}
