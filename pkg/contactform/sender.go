package contactform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const sendMailPath = "/api/send-mail"

// HTTPSender posts the record as JSON to the site's mail relay.
type HTTPSender struct {
	client *resty.Client
}

func NewHTTPSender(baseURL string, timeout time.Duration) *HTTPSender {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPSender{client: client}
}

// Send treats every non-2xx answer as a failure; nothing is retried.
func (s *HTTPSender) Send(ctx context.Context, values Values) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(values).
		Post(sendMailPath)
	if err != nil {
		return fmt.Errorf("contactform: send: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("contactform: relay answered %d", resp.StatusCode())
	}
	return nil
}
