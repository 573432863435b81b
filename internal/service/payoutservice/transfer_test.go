package payoutservice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/GlebRadaev/prizepool/pkg/clients"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestNewTransferGatewayWithoutURLOnlyLogs(t *testing.T) {
	gateway := NewTransferGateway("", nil)

	assert.IsType(t, logGateway{}, gateway)
	assert.NoError(t, gateway.Send(context.Background(), Transfer{DividendID: 1, Amount: decimal.NewFromInt(1)}))
}

func TestHTTPGatewaySend(t *testing.T) {
	ctx := context.Background()
	transfer := Transfer{
		DividendID:    3,
		UserID:        7,
		Amount:        decimal.RequireFromString("42.00"),
		SortCode:      "123456",
		AccountNumber: "12345678",
		Reference:     "dividend-3",
	}

	tests := []struct {
		name      string
		status    int
		clientErr error
		expectErr bool
	}{
		{name: "Accepted", status: http.StatusAccepted},
		{name: "Rejected", status: http.StatusUnprocessableEntity, expectErr: true},
		{name: "Network failure", clientErr: errors.New("connection refused"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := clients.NewMockHTTPClientI(ctrl)
			gateway := NewTransferGateway("http://bank.local/transfers", client)

			client.EXPECT().Post(ctx, "http://bank.local/transfers", gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, headers http.Header, body []byte) (int, []byte, error) {
					assert.Equal(t, "dividend-3", headers.Get("Idempotency-Key"))
					var got map[string]any
					require.NoError(t, json.Unmarshal(body, &got))
					assert.Equal(t, "42", got["amount"])
					assert.Equal(t, "123456", got["sort_code"])
					return tt.status, []byte("{}"), tt.clientErr
				})

			err := gateway.Send(ctx, transfer)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
