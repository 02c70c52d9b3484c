package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
)

// fakeEthProber simulates endpoint reachability per exact URL and records
// every probe it receives.
type fakeEthProber struct {
	lock      sync.Mutex
	reachable map[string]bool
	probed    []string
}

func newFakeEthProber(reachable ...string) *fakeEthProber {
	m := make(map[string]bool, len(reachable))
	for _, url := range reachable {
		m[url] = true
	}

	return &fakeEthProber{reachable: m}
}

func (p *fakeEthProber) factory() EthClientFactory {
	return func(_ context.Context, url string, _ time.Duration) (eth.IEthChainClient, error) {
		p.lock.Lock()
		p.probed = append(p.probed, url)
		ok := p.reachable[url]
		p.lock.Unlock()

		if !ok {
			return nil, errors.New("connection refused")
		}

		return &eth.EthChainClientMock{}, nil
	}
}

func (p *fakeEthProber) probedURLs() []string {
	p.lock.Lock()
	defer p.lock.Unlock()

	return append([]string(nil), p.probed...)
}

func TestConnectionBootstrapperEstablish(t *testing.T) {
	ctx := context.Background()
	timeout := time.Second

	establishEth := func(prober *fakeEthProber, url string) (*Connections, error) {
		b := NewConnectionBootstrapper(hclog.NewNullLogger(),
			WithEthClientFactory(prober.factory()))

		return b.Establish(ctx, "gravity", "", url, timeout)
	}

	t.Run("configured url reachable", func(t *testing.T) {
		prober := newFakeEthProber("http://localhost:8545")

		conns, err := establishEth(prober, "http://localhost:8545")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
		require.Equal(t, []string{"http://localhost:8545"}, prober.probedURLs())
	})

	t.Run("trailing slash is trimmed before probing", func(t *testing.T) {
		prober := newFakeEthProber("http://localhost:8545")

		conns, err := establishEth(prober, "http://localhost:8545/")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
		require.Equal(t, []string{"http://localhost:8545"}, prober.probedURLs())
	})

	t.Run("invalid scheme is rejected without probing", func(t *testing.T) {
		prober := newFakeEthProber()

		_, err := establishEth(prober, "ws://localhost:8545")
		require.ErrorIs(t, err, ErrInvalidScheme)
		require.Empty(t, prober.probedURLs())
	})

	t.Run("localhost falls back to ipv4 loopback", func(t *testing.T) {
		prober := newFakeEthProber("http://127.0.0.1:8545")

		conns, err := establishEth(prober, "http://localhost:8545")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
		require.ElementsMatch(t,
			[]string{"http://localhost:8545", "http://127.0.0.1:8545", "http://[::1]:8545"},
			prober.probedURLs())
	})

	t.Run("localhost falls back to ipv6 loopback", func(t *testing.T) {
		prober := newFakeEthProber("http://[::1]:8545")

		conns, err := establishEth(prober, "http://localhost:8545")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
	})

	t.Run("localhost without port defaults to 80", func(t *testing.T) {
		prober := newFakeEthProber("http://127.0.0.1:80")

		conns, err := establishEth(prober, "http://localhost")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
	})

	t.Run("both loopbacks alive is ambiguous and fatal", func(t *testing.T) {
		prober := newFakeEthProber("http://127.0.0.1:8545", "http://[::1]:8545")

		_, err := establishEth(prober, "http://localhost:8545")
		require.ErrorIs(t, err, ErrAmbiguousFallback)
	})

	t.Run("http scheme upgrades to https", func(t *testing.T) {
		prober := newFakeEthProber("https://rpc.example.com:443")

		conns, err := establishEth(prober, "http://rpc.example.com:8545")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
		require.ElementsMatch(t,
			[]string{"http://rpc.example.com:8545", "https://rpc.example.com:80", "https://rpc.example.com:443"},
			prober.probedURLs())
	})

	t.Run("missing port tries https standard ports", func(t *testing.T) {
		prober := newFakeEthProber("https://rpc.example.com:80")

		conns, err := establishEth(prober, "https://rpc.example.com")
		require.NoError(t, err)
		require.NotNil(t, conns.Eth)
	})

	t.Run("https with explicit port has no applicable fallback", func(t *testing.T) {
		prober := newFakeEthProber()

		_, err := establishEth(prober, "https://rpc.example.com:8545")
		require.ErrorIs(t, err, ErrNoReachableEndpoint)
		require.Equal(t, []string{"https://rpc.example.com:8545"}, prober.probedURLs())
	})

	t.Run("all fallback candidates dead is fatal", func(t *testing.T) {
		prober := newFakeEthProber()

		_, err := establishEth(prober, "http://localhost:8545")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrAmbiguousFallback)
		require.Len(t, prober.probedURLs(), 3)
	})

	t.Run("empty url skips the connection", func(t *testing.T) {
		prober := newFakeEthProber()

		conns, err := establishEth(prober, "")
		require.NoError(t, err)
		require.Nil(t, conns.Eth)
		require.Nil(t, conns.Contact)
		require.Empty(t, prober.probedURLs())
	})

	t.Run("cosmos endpoint resolved through same fallbacks", func(t *testing.T) {
		var (
			lock   sync.Mutex
			probed []string
		)

		cosmosFactory := func(_ context.Context, url, addressPrefix string, timeout time.Duration) (*cosmos.Contact, error) {
			lock.Lock()
			probed = append(probed, url)
			lock.Unlock()

			if url != "http://127.0.0.1:9090" {
				return nil, errors.New("connection refused")
			}

			return cosmos.NewContactWithConn(url, addressPrefix, timeout, nil), nil
		}

		b := NewConnectionBootstrapper(hclog.NewNullLogger(),
			WithCosmosClientFactory(cosmosFactory))

		conns, err := b.Establish(ctx, "gravity", "http://localhost:9090", "", timeout)
		require.NoError(t, err)
		require.NotNil(t, conns.Contact)
		require.Equal(t, "http://127.0.0.1:9090", conns.Contact.URL())
		require.Contains(t, probed, "http://localhost:9090")
	})
}
