// Package transcript is the Fiat-Shamir channel verifier challenges are
// squeezed from. Grounded on internal/vybium-starks-vm/utils/channel.go's
// Channel (Send/hash/state), trimmed to the two hash functions the
// teacher's own dependency graph actually supports without reaching into
// the dropped vybium-crypto field ("poseidon"/"rescue" there fall back to
// a field-friendly hash this repo has no counterpart for and no
// SPEC_FULL.md component needs).
package transcript

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/bfzk/bfzk/internal/bfzk/field"
)

// Channel absorbs committed data and squeezes verifier challenges from a
// running hash state, the same Send/ReceiveRandomFieldElement split as the
// teacher's utils.Channel.
type Channel struct {
	state    []byte
	hashFunc string
	f        *field.Field
}

// New creates a channel over f using the named hash function ("sha3",
// the default, or "sha256").
func New(f *field.Field, hashFunc string) *Channel {
	if hashFunc == "" {
		hashFunc = "sha3"
	}
	return &Channel{state: []byte{0}, hashFunc: hashFunc, f: f}
}

// Send absorbs data into the channel's state.
func (c *Channel) Send(data []byte) {
	c.state = c.hash(append(append([]byte(nil), c.state...), data...))
}

// FieldChallenge squeezes the next verifier challenge as a field element,
// mirroring Channel.ReceiveRandomFieldElement.
func (c *Channel) FieldChallenge() field.Element {
	stateAsInt := new(big.Int).SetBytes(c.state)
	challenge := c.f.Elem(stateAsInt)
	c.state = c.hash(c.state)
	return challenge
}

// FieldChallenges squeezes n field elements in sequence.
func (c *Channel) FieldChallenges(n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = c.FieldChallenge()
	}
	return out
}

func (c *Channel) hash(data []byte) []byte {
	switch c.hashFunc {
	case "sha256":
		h := sha256.Sum256(data)
		return h[:]
	default:
		h := sha3.Sum256(data)
		return h[:]
	}
}
