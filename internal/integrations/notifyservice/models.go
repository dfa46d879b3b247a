package notifyservice

// EmailMessage запрос на отправку email уведомления
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
