package fair

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

const blockSize = sha256.Size

// HexDigest returns the hex-encoded SHA-256 digest of data. Commitments are
// computed with this function and nowhere else.
func HexDigest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ByteGenerator produces a deterministic byte stream from a server seed,
// client seed, nonce and cursor. The stream is HMAC-SHA256 keyed by the
// server seed over "clientSeed:nonce:block" in 32-byte blocks, so any suffix
// of the stream can be regenerated from a cursor alone. Two generators built
// from identical inputs emit identical bytes on any machine.
type ByteGenerator struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	block      int
	offset     int
	buffer     [blockSize]byte
	primed     bool
}

// NewByteGenerator positions a fresh generator at cursor within the stream
// defined by the other inputs. An empty server seed is rejected: HMAC with
// an empty key would silently degrade the whole fairness chain.
func NewByteGenerator(serverSeed, clientSeed string, nonce uint64, cursor int) (*ByteGenerator, error) {
	if serverSeed == "" {
		return nil, ErrEmptyKey
	}
	if cursor < 0 {
		return nil, fmt.Errorf("%w: negative cursor %d", ErrInvalidInput, cursor)
	}
	return &ByteGenerator{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
		block:      cursor / blockSize,
		offset:     cursor % blockSize,
	}, nil
}

// Next returns the next byte of the stream.
func (g *ByteGenerator) Next() byte {
	if !g.primed {
		g.fill()
		g.primed = true
	}
	if g.offset >= blockSize {
		g.block++
		g.offset = 0
		g.fill()
	}
	b := g.buffer[g.offset]
	g.offset++
	return b
}

// Bytes returns the next n bytes of the stream.
func (g *ByteGenerator) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// Float64 consumes four bytes and maps them into [0, 1).
func (g *ByteGenerator) Float64() float64 {
	b0, b1, b2, b3 := g.Next(), g.Next(), g.Next(), g.Next()
	return float64(b0)/256.0 +
		float64(b1)/(256.0*256.0) +
		float64(b2)/(256.0*256.0*256.0) +
		float64(b3)/(256.0*256.0*256.0*256.0)
}

// Cursor returns the index of the next unread byte.
func (g *ByteGenerator) Cursor() int {
	return g.block*blockSize + g.offset
}

func (g *ByteGenerator) fill() {
	mac := hmac.New(sha256.New, []byte(g.serverSeed))
	fmt.Fprintf(mac, "%s:%d:%d", g.clientSeed, g.nonce, g.block)
	copy(g.buffer[:], mac.Sum(nil))
}

const clientSeedCharset = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultClientSeed generates a 10-character random string for players who
// did not supply a client seed of their own.
func DefaultClientSeed() (string, error) {
	return randomString(10)
}

func randomString(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(clientSeedCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw random index: %w", err)
		}
		b[i] = clientSeedCharset[n.Int64()]
	}
	return string(b), nil
}
