package notify

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/springreviewer/admin/core"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"

	nowFunc = time.Now
)

// MailAlert decorates a notifier and e-mails every error notice to an operator address through sendgrid.
type MailAlert struct {
	core.Notifier
	key        string
	from       *sgmail.Email
	to         *sgmail.Email
	subjPrefix string
	logger     core.Logger
	deliver    func(m *sgmail.SGMailV3)
}

var _ core.Notifier = (*MailAlert)(nil)

// NewMailAlert returns `next` unchanged when no sendgrid key or alert recipient is configured.
func NewMailAlert(next core.Notifier, conf *core.Config, logger core.Logger) core.Notifier {
	if conf.Mail.SendgridAPIKey == "" || conf.Mail.AlertTo == "" {
		return next
	}
	svc := &MailAlert{
		Notifier:   next,
		key:        conf.Mail.SendgridAPIKey,
		from:       sgmail.NewEmail(conf.AppName, conf.Mail.From),
		to:         sgmail.NewEmail("", conf.Mail.AlertTo),
		subjPrefix: "[" + conf.AppName + "] ",
		logger:     logger,
	}
	svc.deliver = svc.send
	return svc
}

func (svc *MailAlert) Error(msg string) {
	svc.Notifier.Error(msg)
	m := svc.prepare(msg)
	go svc.deliver(m)
}

func (svc *MailAlert) prepare(msg string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = svc.subjPrefix + "error notice"
	p.AddTos(svc.to)

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent(
		"text/plain",
		fmt.Sprintf("%s\r\n\r\n%s", nowFunc().UTC().Format(time.RFC1123Z), msg),
	))
	return m
}

func (svc *MailAlert) send(m *sgmail.SGMailV3) {
	req := sendgrid.GetRequest(svc.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("sending alert: %v", err), err)
	} else if res.StatusCode >= http.StatusBadRequest {
		svc.logger.Error(fmt.Sprintf("sending alert - status: %d - Body: %s", res.StatusCode, res.Body))
	}
}
