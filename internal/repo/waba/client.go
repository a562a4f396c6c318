package waba

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/pkg/util"
)

const sendTimeout = 30 * time.Second

type Client interface {
	SendText(ctx context.Context, to, body string) error
	SendList(ctx context.Context, to string, list List) error
}

type client struct {
	httpClient    *resty.Client
	baseURL       string
	accessToken   string
	phoneNumberID string
}

func NewClient(conf *config.Config) Client {
	cfg := conf.WhatsApp
	return &client{
		httpClient:    util.NewRestyClient(),
		baseURL:       cfg.BaseURL,
		accessToken:   cfg.AccessToken,
		phoneNumberID: cfg.PhoneNumberID,
	}
}

func (c *client) SendText(ctx context.Context, to, body string) error {
	payload := TextMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             TextBody{Body: body},
	}

	if err := c.send(ctx, payload); err != nil {
		return fmt.Errorf("send text message: %w", err)
	}
	return nil
}

func (c *client) SendList(ctx context.Context, to string, list List) error {
	interactive := Interactive{
		Type: "list",
		Body: InteractiveText{Text: list.Body},
		Action: ListAction{
			Button:   list.ButtonText,
			Sections: list.Sections,
		},
	}
	if list.Header != "" {
		interactive.Header = &ListHeader{Type: "text", Text: list.Header}
	}
	if list.Footer != "" {
		interactive.Footer = util.Ptr(InteractiveText{Text: list.Footer})
	}

	payload := InteractiveMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive:      interactive,
	}

	if err := c.send(ctx, payload); err != nil {
		return fmt.Errorf("send list message: %w", err)
	}
	return nil
}

func (c *client) send(ctx context.Context, payload any) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := c.httpClient.R().
		SetContext(timeoutCtx).
		SetAuthToken(c.accessToken).
		SetBody(payload).
		Post(fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("whatsapp API returned status %d: %s", resp.StatusCode(), resp.Body())
	}
	return nil
}
