package concepts

import (
	"context"
	"encoding/json"
	"time"

	"github.com/axiome/firstprinciples/pkg/cache"
)

// EchoExplainer acknowledges messages without generating content.
type EchoExplainer struct{}

// Name implements Explainer.
func (EchoExplainer) Name() string { return "echo" }

// Explain returns an explanation whose body only confirms receipt.
func (EchoExplainer) Explain(_ context.Context, topic string) (*Explanation, error) {
	return &Explanation{
		ConceptName: topic,
		Explanation: "Message received and logged",
	}, nil
}

// CachedExplainer serves explanations from a cache before asking the
// wrapped Explainer. Cache failures fall through to the wrapped Explainer.
type CachedExplainer struct {
	Inner Explainer
	Cache cache.Cache
	Keyer cache.Keyer
	TTL   time.Duration
}

// NewCachedExplainer wraps inner. A nil keyer uses the default layout.
func NewCachedExplainer(inner Explainer, c cache.Cache, keyer cache.Keyer, ttl time.Duration) *CachedExplainer {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedExplainer{Inner: inner, Cache: c, Keyer: keyer, TTL: ttl}
}

// Name implements Explainer.
func (c *CachedExplainer) Name() string { return c.Inner.Name() }

// Explain implements Explainer.
func (c *CachedExplainer) Explain(ctx context.Context, topic string) (*Explanation, error) {
	key := c.Keyer.ConceptKey(c.Inner.Name(), topic)
	if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
		var e Explanation
		if json.Unmarshal(data, &e) == nil {
			return &e, nil
		}
	}

	e, err := c.Inner.Explain(ctx, topic)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(e); err == nil {
		_ = c.Cache.Set(ctx, key, data, c.TTL)
	}
	return e, nil
}
