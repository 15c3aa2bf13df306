package notification

import (
	"fmt"
	"html"
	"time"

	"gebedsrooster/models"
)

func reminderMessage(reg models.Registration, loc *time.Location) models.MailMessage {
	hour := reg.Date.In(loc).Hour()
	return models.MailMessage{
		MessageID: TemplateRegistrationReminder,
		Subject:   "Een herinnering voor morgen",
		Text: fmt.Sprintf("Beste %s,\r\nHerinnering: morgen om %d.00 uur sta je ingeschreven voor de gebedsmarathon.\r\nWees gezegend!",
			reg.Name, hour),
		HTML: fmt.Sprintf("<p>Beste %s,</p><p>Herinnering: morgen om <strong>%d.00 uur</strong> sta je ingeschreven voor de gebedsmarathon.</p><p>Wees gezegend!</p>",
			html.EscapeString(reg.Name), hour),
	}
}

func accountCreatedMessage(user models.User) models.MailMessage {
	name := user.DisplayName
	if name == "" {
		name = user.Email
	}
	return models.MailMessage{
		MessageID: TemplateAccountCreated,
		Subject:   "Je account voor de gebedsmarathon",
		Text: fmt.Sprintf("Beste %s,\r\nJe account is aangemaakt. Je kunt nu inloggen om je inschrijvingen te beheren.\r\nWees gezegend!",
			name),
		HTML: fmt.Sprintf("<p>Beste %s,</p><p>Je account is aangemaakt. Je kunt nu inloggen om je inschrijvingen te beheren.</p><p>Wees gezegend!</p>",
			html.EscapeString(name)),
	}
}

func passwordResetMessage(link string) models.MailMessage {
	return models.MailMessage{
		MessageID: TemplatePasswordReset,
		Subject:   "Wachtwoord opnieuw instellen",
		Text: fmt.Sprintf("Hallo,\r\nVia deze link stel je een nieuw wachtwoord in voor de gebedsmarathon:\r\n%s\r\nHeb je dit niet aangevraagd? Dan kun je deze e-mail negeren.",
			link),
		HTML: fmt.Sprintf("<p>Hallo,</p><p>Via <a href=\"%s\">deze link</a> stel je een nieuw wachtwoord in voor de gebedsmarathon.</p><p>Heb je dit niet aangevraagd? Dan kun je deze e-mail negeren.</p>",
			html.EscapeString(link)),
	}
}
