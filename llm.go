package docagent

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// MaxTokensLimit is the largest response limit providers accept.
const MaxTokensLimit = math.MaxInt32

// Request is a single call to a language model.
type Request struct {
	// System is the system prompt.
	System string

	// Model identifies the model, e.g. "gemini-2.5-flash".
	Model string

	// Content is the user message.
	Content string

	// MaxTokens limits the length of the response.
	MaxTokens int
}

// Validate returns an error if the request contains invalid fields.
func (r *Request) Validate() error {
	if r.Model == "" {
		return Errorf(EINVALID, "model required")
	}
	if r.Content == "" {
		return Errorf(EINVALID, "content required")
	}
	if r.MaxTokens <= 0 {
		return Errorf(EINVALID, "max tokens must be positive")
	}
	if r.MaxTokens > MaxTokensLimit {
		return Errorf(EINVALID, "max tokens must not exceed %d", MaxTokensLimit)
	}
	return nil
}

// Response holds the text parts returned by a model.
type Response struct {
	Parts []string
}

// Transport performs the network round trip to a model provider.
type Transport interface {
	// Send issues the request and returns the text parts of the reply.
	// Returns ERATELIMIT when the provider is throttling the caller and
	// EUPSTREAM for any other provider failure.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Caller returns the text a model produces for a request.
type Caller interface {
	// Call returns the single text payload for the request.
	// Returns EEXHAUSTED when the provider keeps rate limiting,
	// EUPSTREAM on other provider failures and EMALFORMEDRESPONSE when
	// the reply does not hold exactly one part.
	Call(ctx context.Context, req *Request) (string, error)
}

// Fingerprint identifies a request for caching purposes.
type Fingerprint [sha256.Size]byte

// NewFingerprint hashes the system prompt, model, content and token limit.
// Each field is length-prefixed so that no two distinct requests share
// a byte stream.
func NewFingerprint(req *Request) Fingerprint {
	h := sha256.New()
	writeField := func(s string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	writeField(req.System)
	writeField(req.Model)
	writeField(req.Content)

	var tokens [8]byte
	binary.BigEndian.PutUint64(tokens[:], uint64(req.MaxTokens))
	h.Write(tokens[:])

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

// String returns the lowercase hex digest.
func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// ResponseCache stores model responses keyed by request fingerprint.
// Entries never expire and are never modified once written.
type ResponseCache interface {
	// Get returns the cached text. ok is false when nothing is stored.
	Get(ctx context.Context, fp Fingerprint) (text string, ok bool, err error)

	// Put stores text for the fingerprint.
	Put(ctx context.Context, fp Fingerprint, text string) error
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
