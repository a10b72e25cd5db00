package address

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

var ErrVerifierUnavailable = errors.New("address verifier unavailable")

// Verifier is the external address-verification boundary. Implementations
// never mutate anything; they only return a verdict.
type Verifier interface {
	Verify(ctx context.Context, addr Address) (*Verification, error)
}

type httpVerifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPVerifier(baseURL string) Verifier {
	if baseURL == "" {
		logger.L().Warn("address verifier URL is empty")
	}

	return &httpVerifier{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (v *httpVerifier) Verify(ctx context.Context, addr Address) (*Verification, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("city", addr.City),
		zap.String("state", addr.State),
		zap.String("postal", addr.Postal),
	)

	jsonBody, err := json.Marshal(addr)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/verify", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Error("address verification request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("address verifier returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, fmt.Errorf("%w: status %d", ErrVerifierUnavailable, resp.StatusCode)
	}

	var verdict Verification
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, err
	}

	log.Info("address verified", zap.Bool("is_valid", verdict.IsValid))
	return &verdict, nil
}
