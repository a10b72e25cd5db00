package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"printshop-be/internal/logger"

	"go.uber.org/zap"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type ProcessRequest struct {
	SessionID    string  `json:"session_id"`
	Method       Method  `json:"method"`
	PaymentToken string  `json:"payment_token,omitempty"`
	SaveMethod   bool    `json:"save_method"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// ProcessResult distinguishes a declined charge (Success=false with a
// human-readable Error) from a transport failure, which is returned as a Go
// error instead.
type ProcessResult struct {
	Success         bool   `json:"success"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	Error           string `json:"error,omitempty"`
}

type Gateway interface {
	Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
}

type httpGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) Gateway {
	if apiKey == "" {
		logger.L().Warn("payment gateway API key is empty")
	}

	return &httpGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *httpGateway) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("session_id", req.SessionID),
		zap.String("method", string(req.Method.Kind)),
		zap.Float64("amount", req.Amount),
	)

	if err := req.Method.Validate(); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/payments", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		log.Error("payment request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Declines come back as 402 with the same response shape; anything else
	// non-2xx is infrastructure.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPaymentRequired {
		log.Error("payment gateway returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var result ProcessResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	if result.Success {
		log.Info("payment processed", zap.String("reference", result.ReferenceNumber))
	} else {
		log.Warn("payment declined", zap.String("reason", result.Error))
	}

	return &result, nil
}
