// Folio - Portfolio Content API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package notion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/folio/internal/config"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/metrics"
)

// BreakerName labels the Notion circuit breaker in logs and metrics.
const BreakerName = "notion-api"

// CircuitBreakerClient wraps Client so that a failing Notion API is not
// hammered by every incoming portfolio request.
//
// Settings:
//   - 3 requests allowed in half-open state
//   - counts reset every minute while closed
//   - 2 minutes open before probing again
//   - opens at a failure ratio of 60% over at least 10 requests
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	log    zerolog.Logger
}

// NewCircuitBreakerClient creates a Notion client protected by a circuit breaker.
func NewCircuitBreakerClient(cfg *config.NotionConfig) *CircuitBreakerClient {
	return newCircuitBreakerClient(NewClient(cfg), breakerSettings(BreakerName))
}

func breakerSettings(name string) gobreaker.Settings {
	log := logging.WithComponent("notion")
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				log.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// A caller that went away says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			log.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	}
}

func newCircuitBreakerClient(client *Client, st gobreaker.Settings) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(st.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(st.Name).Set(0)

	return &CircuitBreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[interface{}](st),
		name:   st.Name,
		log:    logging.WithComponent("notion"),
	}
}

// execute runs fn through the breaker and records the outcome.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			cbc.log.Warn().Err(err).Str("breaker", cbc.name).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(cbc.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// State returns the current breaker state name.
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

// QueryDatabase is Client.QueryDatabase behind the breaker.
func (cbc *CircuitBreakerClient) QueryDatabase(ctx context.Context, databaseID string, filter *Filter) ([]Page, error) {
	pages, err := castResult[[]Page](cbc.execute(func() (interface{}, error) {
		p, err := cbc.client.QueryDatabase(ctx, databaseID, filter)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}))
	if err != nil {
		return nil, err
	}
	return *pages, nil
}

// GetPage is Client.GetPage behind the breaker.
func (cbc *CircuitBreakerClient) GetPage(ctx context.Context, pageID string) (*Page, error) {
	return castResult[Page](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetPage(ctx, pageID)
	}))
}
