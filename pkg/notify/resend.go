package notify

import (
	"context"
	"net/http"
	"strings"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
)

const defaultResendBaseURL = "https://api.resend.com"

type resendNotifier struct {
	client  *http.Client
	baseURL string
	apiKey  string
	from    string
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func newResend(cfg Config) *resendNotifier {
	base := strings.TrimRight(cfg.ResendBaseURL, "/")
	if base == "" {
		base = defaultResendBaseURL
	}
	return &resendNotifier{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: base,
		apiKey:  cfg.ResendAPIKey,
		from:    cfg.From,
	}
}

func (r *resendNotifier) NotifyPickup(ctx context.Context, n PickupNotice) error {
	if err := n.Validate(); err != nil {
		return err
	}
	body, err := renderPickup(n)
	if err != nil {
		return err
	}

	var (
		out  resendResponse
		code int
	)
	err = gout.New(r.client).
		POST(r.baseURL + "/emails").
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + r.apiKey}).
		SetJSON(gout.H{
			"from":    r.from,
			"to":      []string{n.CustomerEmail},
			"subject": n.Subject(),
			"html":    body,
		}).
		BindJSON(&out).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "resend request")
	}
	if code < 200 || code >= 300 {
		msg := out.Message
		if msg == "" {
			msg = http.StatusText(code)
		}
		return errors.Errorf("resend rejected email: %d %s", code, msg)
	}
	return nil
}
