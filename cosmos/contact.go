package cosmos

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// Contact bundles an established gravity gRPC connection with the address
// prefix and per-call timeout every consumer of that connection needs. The
// connection has already passed a liveness probe against the exact URL held
// here.
type Contact struct {
	url           string
	addressPrefix string
	timeout       time.Duration
	conn          *grpc.ClientConn
}

// NewContact dials url and blocks until the transport is ready or timeout
// expires, so a returned Contact is known to be live.
func NewContact(
	ctx context.Context, rawURL, addressPrefix string, timeout time.Duration,
) (*Contact, error) {
	target, creds, err := grpcTarget(rawURL)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := grpc.DialContext(
		dialCtx, target,
		grpc.WithTransportCredentials(creds),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cosmos grpc %s: %w", rawURL, err)
	}

	return &Contact{
		url:           rawURL,
		addressPrefix: addressPrefix,
		timeout:       timeout,
		conn:          conn,
	}, nil
}

// NewContactWithConn wraps an already-established connection. Intended for
// embedders that manage dialing themselves and for tests.
func NewContactWithConn(
	rawURL, addressPrefix string, timeout time.Duration, conn *grpc.ClientConn,
) *Contact {
	return &Contact{
		url:           rawURL,
		addressPrefix: addressPrefix,
		timeout:       timeout,
		conn:          conn,
	}
}

func (c *Contact) URL() string {
	return c.url
}

func (c *Contact) AddressPrefix() string {
	return c.addressPrefix
}

func (c *Contact) Timeout() time.Duration {
	return c.timeout
}

func (c *Contact) GrpcConn() *grpc.ClientConn {
	return c.conn
}

func (c *Contact) Close() error {
	if c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

func grpcTarget(rawURL string) (string, credentials.TransportCredentials, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid cosmos grpc url %s: %w", rawURL, err)
	}

	port := u.Port()
	if port == "" {
		if u.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	var creds credentials.TransportCredentials
	if u.Scheme == "https" {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		creds = insecure.NewCredentials()
	}

	return net.JoinHostPort(u.Hostname(), port), creds, nil
}
