package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/linkmark/linkmark-api/pkg/logger"
	"github.com/linkmark/linkmark-api/pkg/metrics"
	"github.com/linkmark/linkmark-api/pkg/middleware"
	"github.com/redis/go-redis/v9"
)

// CachedVerifier wraps another verifier with a short-TTL Redis cache keyed by
// a hash of the raw token, so repeated requests with the same bearer token
// skip the provider round trip. The TTL must stay well below token lifetime;
// a cached entry is never served longer than that window. Cache errors fall
// through to a direct verify.
type CachedVerifier struct {
	inner  middleware.Verifier
	client *redis.Client
	ttl    time.Duration
}

func NewCachedVerifier(inner middleware.Verifier, client *redis.Client, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{inner: inner, client: client, ttl: ttl}
}

func cacheKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return "identity:" + hex.EncodeToString(sum[:])
}

func (v *CachedVerifier) Verify(ctx context.Context, raw string) (*middleware.Identity, error) {
	key := cacheKey(raw)
	if data, err := v.client.Get(ctx, key).Bytes(); err == nil {
		var ident middleware.Identity
		if err := json.Unmarshal(data, &ident); err == nil {
			metrics.IdentityCache.WithLabelValues("hit").Inc()
			return &ident, nil
		}
	} else if err != redis.Nil {
		logger.Warnf("identity cache read failed: %v", err)
		metrics.IdentityCache.WithLabelValues("error").Inc()
	} else {
		metrics.IdentityCache.WithLabelValues("miss").Inc()
	}

	ident, err := v.inner.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ident); err == nil {
		if err := v.client.Set(ctx, key, data, v.ttl).Err(); err != nil {
			logger.Warnf("identity cache write failed: %v", err)
		}
	}
	return ident, nil
}
