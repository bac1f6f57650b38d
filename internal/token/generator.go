package token

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Word lists for the memorable prefix. Short, unambiguous words only.
var adjectives = []string{
	"swift", "bright", "unique", "calm", "deep", "bold",
	"wise", "kind", "pure", "humble", "warm", "cool",
	"fresh", "clear", "radiant", "keen", "firm", "true",
}

var nouns = []string{
	"wave", "star", "moon", "sun", "wind", "tree",
	"lake", "bird", "cloud", "rose", "light", "peak",
	"rain", "leaf", "seed", "song",
}

const (
	minTokenLength     = 32
	maxTokenLength     = 64
	generationCooldown = 1 * time.Second
)

// ErrTooFrequent is returned when tokens are requested faster than the cooldown
var ErrTooFrequent = errors.New("token generation too frequent")

// Generator produces memorable yet secure shared-secret tokens in the form
// adjective-adjective-noun-<24 hex>-<16 hex digest>. The readable prefix
// makes a token easy to recognize in configs; the hex tail carries the
// entropy.
type Generator struct {
	mu             sync.Mutex
	lastGeneration time.Time
	cooldown       time.Duration
}

// NewGenerator creates a new Generator
func NewGenerator() *Generator {
	return &Generator{
		cooldown: generationCooldown,
	}
}

// Generate returns a new token. Consecutive calls within the cooldown fail
// with ErrTooFrequent.
func (g *Generator) Generate() (string, error) {
	g.mu.Lock()
	if !g.lastGeneration.IsZero() && time.Since(g.lastGeneration) < g.cooldown {
		g.mu.Unlock()
		return "", ErrTooFrequent
	}
	g.lastGeneration = time.Now()
	g.mu.Unlock()

	adj1, err := pickWord(adjectives)
	if err != nil {
		return "", err
	}
	adj2, err := pickWord(adjectives)
	if err != nil {
		return "", err
	}
	noun, err := pickWord(nouns)
	if err != nil {
		return "", err
	}

	randomBytes := make([]byte, 12)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	randomHex := hex.EncodeToString(randomBytes)

	// Fold a timestamp and a nonce into a short digest so even identical
	// random draws could not collide
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	digest, err := blake2b.New(8, nil)
	if err != nil {
		return "", err
	}
	digest.Write([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	digest.Write(nonce)
	digest.Write([]byte(randomHex))
	uniqueHash := hex.EncodeToString(digest.Sum(nil))

	token := fmt.Sprintf("%s-%s-%s-%s-%s", adj1, adj2, noun, randomHex, uniqueHash)
	if len(token) < minTokenLength || len(token) > maxTokenLength {
		return "", fmt.Errorf("generated token length %d outside acceptable range", len(token))
	}

	return token, nil
}

// pickWord selects a word using crypto/rand; math/rand has no place in
// secret generation
func pickWord(words []string) (string, error) {
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	idx := binary.BigEndian.Uint64(randomBytes) % uint64(len(words))
	return words[idx], nil
}
