package contracts

type WebhookDispatcher interface {
	SetWebhookUrl(sheetId string, label string, webhookUrl string)
	GetWebhookUrl(sheetId string, label string) string
	Notify(sheetId string, cells []*Cell)
	Start()
	Close()
}
