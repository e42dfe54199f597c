package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

const VALKEY_ANALYSIS_KEY_PREFIX = "ytsentiment:analysis:"

type ValkeyClient struct {
	Client valkey.Client
}

type ValkeyOptions struct {
	Address  string
	Password string
	UseTLS   bool
}

// NewValkeyClient connects and pings the server once so a bad address fails
// at startup instead of on the first cache lookup.
func NewValkeyClient(ctx context.Context, o ValkeyOptions) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			o.Address,
		},
		Password:         o.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if o.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	vc := &ValkeyClient{Client: client}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	if err := vc.Ping(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("address", o.Address))

	return vc, nil
}

func (vc *ValkeyClient) Ping(ctx context.Context) error {
	return vc.Client.Do(ctx, vc.Client.B().Ping().Build()).Error()
}

func (vc *ValkeyClient) Close() {
	if vc != nil && vc.Client != nil {
		vc.Client.Close()
	}
}

// Get returns the stored bytes and whether the key existed.
func (vc *ValkeyClient) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res := vc.Client.Do(ctx, vc.Client.B().Get().Key(VALKEY_ANALYSIS_KEY_PREFIX+key).Build())
	data, err := res.AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores value under key. A non-positive ttl stores it without expiry,
// matching the in-memory tier.
func (vc *ValkeyClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := vc.Client.Do(ctx, setCommand(vc.Client.B(), key, value, ttl)).Error(); err != nil {
		slog.Warn("[ValkeyClient] Set failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func setCommand(b valkey.Builder, key string, value []byte, ttl time.Duration) valkey.Completed {
	set := b.Set().Key(VALKEY_ANALYSIS_KEY_PREFIX + key).Value(valkey.BinaryString(value))
	seconds := int64(ttl / time.Second)
	if ttl > 0 && seconds < 1 {
		seconds = 1
	}
	if seconds <= 0 {
		return set.Build()
	}
	return set.ExSeconds(seconds).Build()
}
