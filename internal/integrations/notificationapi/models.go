package notificationapi

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// NotifyRequest тело запроса POST /notify
type NotifyRequest struct {
	Channel   string  `json:"channel"`   // email | sms
	Recipient string  `json:"recipient"` // email или телефон
	Subject   *string `json:"subject"`   // только для email
	Body      string  `json:"body"`
}
