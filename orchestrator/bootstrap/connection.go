package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
)

var (
	// ErrInvalidScheme marks an endpoint URL whose scheme is neither http
	// nor https. The process must not start with such a configuration.
	ErrInvalidScheme = errors.New("url has an invalid scheme, use http or https")

	// ErrAmbiguousFallback marks the case where the configured URL failed
	// its probe but both fallback candidates then succeeded. Adopting either
	// silently would hide a real misconfiguration.
	ErrAmbiguousFallback = errors.New("both fallback urls succeeded after the configured url failed")

	// ErrNoReachableEndpoint marks the exhaustion of all fallback candidates.
	ErrNoReachableEndpoint = errors.New("no reachable endpoint")
)

// Connections bundles the live chain handles. A nil handle means the caller
// did not request that connection; a non-nil handle has already passed a
// liveness probe against the exact URL it will be used with.
type Connections struct {
	Eth     eth.IEthChainClient
	Contact *cosmos.Contact
}

func (c *Connections) Close() {
	if c.Eth != nil {
		c.Eth.Close()
	}

	if c.Contact != nil {
		_ = c.Contact.Close()
	}
}

type (
	EthClientFactory    func(ctx context.Context, url string, timeout time.Duration) (eth.IEthChainClient, error)
	CosmosClientFactory func(ctx context.Context, url, addressPrefix string, timeout time.Duration) (*cosmos.Contact, error)
)

// ConnectionBootstrapper resolves configured endpoint URLs into live client
// handles. It exists first and foremost to untangle the usual ipv4/ipv6
// localhost conflicts and missing-port misconfigurations instead of failing
// on them outright.
type ConnectionBootstrapper struct {
	ethFactory    EthClientFactory
	cosmosFactory CosmosClientFactory
	logger        hclog.Logger
}

type BootstrapperOption func(*ConnectionBootstrapper)

// WithEthClientFactory overrides how chain-B clients are constructed and
// probed. Used by tests to simulate reachability.
func WithEthClientFactory(factory EthClientFactory) BootstrapperOption {
	return func(b *ConnectionBootstrapper) {
		b.ethFactory = factory
	}
}

// WithCosmosClientFactory overrides how chain-A contacts are constructed and
// probed.
func WithCosmosClientFactory(factory CosmosClientFactory) BootstrapperOption {
	return func(b *ConnectionBootstrapper) {
		b.cosmosFactory = factory
	}
}

func NewConnectionBootstrapper(logger hclog.Logger, opts ...BootstrapperOption) *ConnectionBootstrapper {
	b := &ConnectionBootstrapper{
		ethFactory:    defaultEthClientFactory(logger),
		cosmosFactory: cosmos.NewContact,
		logger:        logger,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func defaultEthClientFactory(logger hclog.Logger) EthClientFactory {
	return func(ctx context.Context, url string, timeout time.Duration) (eth.IEthChainClient, error) {
		client, err := eth.NewEthChainClient(url, timeout, logger.Named("eth_client"))
		if err != nil {
			return nil, err
		}

		if _, err := client.BlockNumber(ctx); err != nil {
			client.Close()

			return nil, err
		}

		return client, nil
	}
}

// Establish probes the supplied endpoint URLs and returns live handles for
// every non-empty one. Each endpoint is resolved independently; any endpoint
// that cannot be reached through the configured URL or its fallbacks is a
// fatal configuration error.
func (b *ConnectionBootstrapper) Establish(
	ctx context.Context, addressPrefix, cosmosGrpcURL, ethRPCURL string, timeout time.Duration,
) (*Connections, error) {
	conns := &Connections{}

	if cosmosGrpcURL != "" {
		contact, err := establishEndpoint(ctx, "cosmos grpc", cosmosGrpcURL,
			func(ctx context.Context, url string) (*cosmos.Contact, error) {
				return b.cosmosFactory(ctx, url, addressPrefix, timeout)
			}, b.logger)
		if err != nil {
			return nil, err
		}

		conns.Contact = contact
	}

	if ethRPCURL != "" {
		client, err := establishEndpoint(ctx, "ethereum rpc", ethRPCURL,
			func(ctx context.Context, url string) (eth.IEthChainClient, error) {
				return b.ethFactory(ctx, url, timeout)
			}, b.logger)
		if err != nil {
			conns.Close()

			return nil, err
		}

		conns.Eth = client
	}

	return conns, nil
}

// fallbackStrategy builds the pair of candidate URLs to try when the
// configured URL fails its probe. Strategies are consulted in order and the
// first applicable one wins; new heuristics slot in as new table entries.
type fallbackStrategy struct {
	name       string
	applies    func(u *url.URL) bool
	candidates func(u *url.URL) [2]string
}

var fallbackStrategies = []fallbackStrategy{
	{
		// conflicts between ipv4 and ipv6 localhost are a common local
		// misconfiguration, try both loopback literals on the same port
		name: "localhost",
		applies: func(u *url.URL) bool {
			return strings.Contains(strings.ToLower(u.Host), "localhost")
		},
		candidates: func(u *url.URL) [2]string {
			port := u.Port()
			if port == "" {
				port = "80"
			}

			return [2]string{
				fmt.Sprintf("%s://127.0.0.1:%s", u.Scheme, port),
				fmt.Sprintf("%s://[::1]:%s", u.Scheme, port),
			}
		},
	},
	{
		// transparently upgrade to https if available, never transparently
		// downgrade for obvious security reasons
		name: "https upgrade",
		applies: func(u *url.URL) bool {
			return u.Port() == "" || u.Scheme == "http"
		},
		candidates: func(u *url.URL) [2]string {
			return [2]string{
				fmt.Sprintf("https://%s:80", u.Hostname()),
				fmt.Sprintf("https://%s:443", u.Hostname()),
			}
		},
	},
}

func establishEndpoint[T any](
	ctx context.Context, kind, rawURL string,
	probe func(ctx context.Context, url string) (T, error),
	logger hclog.Logger,
) (T, error) {
	var zero T

	trimmedURL := strings.TrimRight(rawURL, "/")

	parsed, err := url.Parse(trimmedURL)
	if err != nil {
		return zero, fmt.Errorf("invalid %s url %s: %w", kind, rawURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return zero, fmt.Errorf("%w: %s", ErrInvalidScheme, rawURL)
	}

	client, baseErr := probe(ctx, trimmedURL)
	if baseErr == nil {
		return client, nil
	}

	logger.Warn("failed to access endpoint, trying fallback options",
		"kind", kind, "url", rawURL, "err", baseErr)

	for _, strategy := range fallbackStrategies {
		if !strategy.applies(parsed) {
			continue
		}

		candidates := strategy.candidates(parsed)
		logger.Warn("trying fallback urls",
			"kind", kind, "strategy", strategy.name,
			"first", candidates[0], "second", candidates[1])

		client, corrected, err := probePair(ctx, candidates, probe)
		if err != nil {
			return zero, fmt.Errorf("could not connect to %s, fallback %s failed for %s: %w",
				kind, strategy.name, rawURL, err)
		}

		logger.Info("url fallback succeeded, configured url has been corrected",
			"kind", kind, "strategy", strategy.name,
			"configured", rawURL, "corrected", corrected)

		return client, nil
	}

	return zero, fmt.Errorf("could not connect to %s, check your url %s: %w: %w",
		kind, rawURL, ErrNoReachableEndpoint, baseErr)
}

// probePair probes both candidates concurrently. Exactly one success adopts
// that candidate; both failing exhausts the strategy; both succeeding is
// ambiguous, since the configured URL already failed something is off with
// the local network setup and it is not for us to guess which listener the
// operator meant.
func probePair[T any](
	ctx context.Context, candidates [2]string,
	probe func(ctx context.Context, url string) (T, error),
) (T, string, error) {
	var zero T

	type probeResult struct {
		client T
		err    error
	}

	results := [2]probeResult{}

	done := make(chan struct{})

	go func() {
		results[0].client, results[0].err = probe(ctx, candidates[0])

		close(done)
	}()

	results[1].client, results[1].err = probe(ctx, candidates[1])

	<-done

	switch {
	case results[0].err == nil && results[1].err != nil:
		return results[0].client, candidates[0], nil
	case results[0].err != nil && results[1].err == nil:
		return results[1].client, candidates[1], nil
	case results[0].err == nil && results[1].err == nil:
		return zero, "", ErrAmbiguousFallback
	default:
		return zero, "", errors.Join(results[0].err, results[1].err)
	}
}
