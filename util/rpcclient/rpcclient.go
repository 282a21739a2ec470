// Copyright 2021-2025, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package rpcclient is the JSON-RPC connection shared by remote federation
// signers. Calls that time out, or fail with an error matching retry-errors,
// are retried.
package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/node"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/offchainlabs/asbprover/util/signature"
)

type ClientConfig struct {
	URL            string        `koanf:"url"`
	JWTSecret      string        `koanf:"jwtsecret"`
	Timeout        time.Duration `koanf:"timeout"`
	Retries        uint          `koanf:"retries"`
	ConnectionWait time.Duration `koanf:"connection-wait"`
	RetryErrors    string        `koanf:"retry-errors"`
}

type ClientConfigFetcher func() *ClientConfig

var DefaultClientConfig = ClientConfig{
	URL:       "",
	JWTSecret: "",
	Timeout:   10 * time.Second,
}

func ClientConfigAddOptions(prefix string, f *flag.FlagSet, defaultConfig *ClientConfig) {
	f.String(prefix+".url", defaultConfig.URL, "url of the federation signing service")
	f.String(prefix+".jwtsecret", defaultConfig.JWTSecret, "path to file with jwtsecret for authentication")
	f.Duration(prefix+".connection-wait", defaultConfig.ConnectionWait, "how long to wait for initial connection")
	f.Duration(prefix+".timeout", defaultConfig.Timeout, "per-response timeout (0-disabled)")
	f.Uint(prefix+".retries", defaultConfig.Retries, "number of retries in case of failure(0 mean one attempt)")
	f.String(prefix+".retry-errors", defaultConfig.RetryErrors, "Errors matching this regular expression are automatically retried")
}

func (c *ClientConfig) Validate() error {
	if c.RetryErrors == "" {
		return nil
	}
	if _, err := regexp.Compile(c.RetryErrors); err != nil {
		return fmt.Errorf("invalid retry-errors expression: %w", err)
	}
	return nil
}

type Client struct {
	config ClientConfigFetcher
	client *rpc.Client
	calls  atomic.Uint64
}

func NewClient(config ClientConfigFetcher) *Client {
	return &Client{config: config}
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) retryable(ctx context.Context, config *ClientConfig, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return true
	}
	if config.RetryErrors == "" {
		return false
	}
	match, regexErr := regexp.MatchString(config.RetryErrors, err.Error())
	if regexErr != nil {
		log.Warn("rpcclient: bad value for retry-errors, not retrying", "err", regexErr, "value", config.RetryErrors)
		return false
	}
	return match
}

// CallContext makes at most Retries+1 attempts, each bounded by Timeout.
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if c.client == nil {
		return errors.New("rpc client not connected")
	}
	config := c.config()
	call := c.calls.Add(1)
	var err error
	for attempt := uint(0); attempt <= config.Retries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		attemptCtx, cancel := withTimeout(ctx, config.Timeout)
		err = c.client.CallContext(attemptCtx, result, method, args...)
		cancel()
		if err == nil {
			log.Trace("rpc call answered", "method", method, "call", call, "attempt", attempt)
			return nil
		}
		if !c.retryable(ctx, config, err) {
			break
		}
		log.Info("rpc call failed, retrying", "method", method, "call", call, "attempt", attempt, "err", err)
	}
	return err
}

// Errors a retry cannot cure.
func permanentDialError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "parse") ||
		strings.Contains(msg, "malformed") ||
		strings.Contains(msg, "no known transport")
}

// Start dials the configured url, retrying once a second for up to
// ConnectionWait.
func (c *Client) Start(ctx context.Context) error {
	config := c.config()
	if config.URL == "" {
		return errors.New("no url provided for this connection")
	}
	jwt, err := signature.LoadSigningKey(config.JWTSecret)
	if err != nil {
		return err
	}
	var options []rpc.ClientOption
	if jwt != nil {
		options = append(options, rpc.WithHTTPAuth(node.NewJWTAuth([32]byte(*jwt))))
	}
	connectionDeadline := time.After(config.ConnectionWait)
	for {
		dialCtx, cancel := withTimeout(ctx, config.Timeout)
		client, err := rpc.DialOptions(dialCtx, config.URL, options...)
		cancel()
		if err == nil {
			c.client = client
			return nil
		}
		if permanentDialError(err) {
			return fmt.Errorf("%w: url %s", err, config.URL)
		}
		log.Debug("waiting for rpc endpoint", "url", config.URL, "err", err)
		select {
		case <-connectionDeadline:
			return fmt.Errorf("timeout trying to connect lastError: %w", err)
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

// Dial returns a started client, ready for signature.NewRemoteSigner.
func Dial(ctx context.Context, config ClientConfigFetcher) (*Client, error) {
	client := NewClient(config)
	if err := client.Start(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

var _ signature.Caller = (*Client)(nil)
