package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Key kinds. Every key produced by a Keyer contains exactly one of these as
// a colon-separated segment, after any scope prefix.
const (
	kindArtifact = "artifact"
	kindConcept  = "concept"
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered artifact of a given source.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string

	// ConceptKey identifies an explanation of a concept topic.
	ConceptKey(model, topic string) string
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Directed bool    `json:"directed"`
	Scale    float64 `json:"scale,omitempty"`
}

// Hash returns the hex SHA-256 of data. Source hashes and file cache paths
// both use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<hash>", hashing the source hash together
// with opts.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return digestKey(kindArtifact, sourceHash, opts)
}

// ConceptKey returns "concept:<model>:<hash>". Topics are compared
// case-insensitively with surrounding space removed.
func (DefaultKeyer) ConceptKey(model, topic string) string {
	return digestKey(kindConcept+":"+model, strings.ToLower(strings.TrimSpace(topic)))
}

func digestKey(prefix string, parts ...any) string {
	b, _ := json.Marshal(parts)
	return prefix + ":" + Hash(b)
}

// ScopedKeyer prepends a fixed scope to another keyer's keys, so several
// deployments can share one Redis without colliding.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	Inner Keyer
	Scope string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Scope: scope}
}

func (k ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.Scope + k.Inner.ArtifactKey(sourceHash, opts)
}

func (k ScopedKeyer) ConceptKey(model, topic string) string {
	return k.Scope + k.Inner.ConceptKey(model, topic)
}

// keyType labels cache events. It returns the first known kind segment of
// key, skipping any scope, and falls back to the first segment.
func keyType(key string) string {
	segs := strings.Split(key, ":")
	for _, s := range segs {
		if s == kindArtifact || s == kindConcept {
			return s
		}
	}
	return segs[0]
}
