// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksim Petrenko

package sms

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/mpetrenko/shroud/internal/config"
	"github.com/mpetrenko/shroud/internal/logger"
)

// gatewayRequest is the JSON body of a send request to the SMS provider.
type gatewayRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// GatewayClient is the resty-backed [Sender] implementation speaking the
// provider's HTTP API.
type GatewayClient struct {
	client  *resty.Client
	baseURL string
	sender  string
	logger  *logger.Logger
}

// NewGatewayClient constructs a [Sender] over the provider named in cfg.
func NewGatewayClient(cfg config.SMS, log *logger.Logger) *GatewayClient {
	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)

	return &GatewayClient{
		client:  client,
		baseURL: cfg.GatewayURL,
		sender:  cfg.Sender,
		logger:  log,
	}
}

// Send posts one text message to the gateway.
func (g *GatewayClient) Send(ctx context.Context, phoneNumber, text string) error {
	log := logger.FromContext(ctx)

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(gatewayRequest{
			From: g.sender,
			To:   phoneNumber,
			Text: text,
		}).
		Post(g.baseURL + "/v1/sms")
	if err != nil {
		log.Err(err).Str("func", "*GatewayClient.Send").Msg("error calling sms gateway")
		return fmt.Errorf("error calling sms gateway: %w", err)
	}

	if !resp.IsSuccess() {
		log.Error().
			Str("func", "*GatewayClient.Send").
			Int("status", resp.StatusCode()).
			Msg("sms gateway rejected message")
		return fmt.Errorf("sms gateway rejected message: status %d", resp.StatusCode())
	}

	return nil
}
