// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package push

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/mpetrenko/shroud/internal/config"
	"github.com/mpetrenko/shroud/internal/logger"
)

// gatewayRequest is the JSON body of a delivery request to the provider.
type gatewayRequest struct {
	Token  string         `json:"token"`
	Title  string         `json:"title,omitempty"`
	Body   string         `json:"body,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
	Silent bool           `json:"silent"`
}

// gatewayResponse is the provider's JSON reply.
type gatewayResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Provider error code for a token it no longer knows.
const errorCodeUnregistered = "unregistered"

// GatewayClient is the resty-backed [Sender] implementation speaking the
// provider's HTTP delivery API.
type GatewayClient struct {
	client  *resty.Client
	baseURL string
	logger  *logger.Logger
}

// NewGatewayClient constructs a [Sender] over the provider named in cfg.
func NewGatewayClient(cfg config.Push, log *logger.Logger) *GatewayClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &GatewayClient{
		client:  client,
		baseURL: cfg.GatewayURL,
		logger:  log,
	}
}

// Send posts one delivery request.
//
// A 404/410 reply or a provider error code of "unregistered" maps to
// [ErrTokenUnregistered]; every other non-2xx reply is surfaced as a generic
// delivery error carrying the provider status.
func (g *GatewayClient) Send(ctx context.Context, msg Message) error {
	log := logger.FromContext(ctx)

	var reply gatewayResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(gatewayRequest{
			Token:  msg.Token,
			Title:  msg.Title,
			Body:   msg.Body,
			Data:   msg.Data,
			Silent: msg.Silent,
		}).
		SetResult(&reply).
		SetError(&reply).
		Post(g.baseURL + "/v1/messages")
	if err != nil {
		log.Err(err).Str("func", "*GatewayClient.Send").Msg("error calling push gateway")
		return fmt.Errorf("error calling push gateway: %w", err)
	}

	if resp.IsSuccess() {
		return nil
	}

	if resp.StatusCode() == http.StatusNotFound || resp.StatusCode() == http.StatusGone ||
		reply.Error == errorCodeUnregistered {
		return fmt.Errorf("%w: provider replied %d", ErrTokenUnregistered, resp.StatusCode())
	}

	log.Error().
		Str("func", "*GatewayClient.Send").
		Int("status", resp.StatusCode()).
		Str("provider_error", reply.Error).
		Msg("push gateway rejected message")

	return fmt.Errorf("push gateway rejected message: status %d", resp.StatusCode())
}
