package payoutservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/GlebRadaev/prizepool/pkg/clients"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Transfer is the instruction sent to the bank for a paid dividend.
type Transfer struct {
	DividendID    int             `json:"dividend_id"`
	UserID        int             `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	SortCode      string          `json:"sort_code"`
	AccountNumber string          `json:"account_number"`
	Reference     string          `json:"reference"`
}

type TransferGateway interface {
	Send(ctx context.Context, transfer Transfer) error
}

// NewTransferGateway posts transfers to url. With no url configured the
// instructions are only logged.
func NewTransferGateway(url string, client clients.HTTPClientI) TransferGateway {
	if url == "" {
		return logGateway{}
	}
	return &httpGateway{url: url, client: client}
}

type logGateway struct{}

func (logGateway) Send(_ context.Context, t Transfer) error {
	zap.L().Info("bank transfer instruction",
		zap.Int("dividend_id", t.DividendID),
		zap.Int("user_id", t.UserID),
		zap.String("amount", t.Amount.StringFixed(2)),
		zap.String("reference", t.Reference),
	)
	return nil
}

type httpGateway struct {
	url    string
	client clients.HTTPClientI
}

func (g *httpGateway) Send(ctx context.Context, t Transfer) error {
	body, err := json.Marshal(t)
	if err != nil {
		return err
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Idempotency-Key", t.Reference)

	status, respBody, err := g.client.Post(ctx, g.url, headers, body)
	if err != nil {
		return fmt.Errorf("can't send transfer: %w", err)
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return fmt.Errorf("transfer rejected with status %d: %s", status, respBody)
	}
	return nil
}
