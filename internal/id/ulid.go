package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"
)

// ulidEncoding is Crockford's Base32 (no I, L, O, U).
const ulidEncoding = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDProvider mints ULIDs: 10 characters of millisecond timestamp followed
// by 16 characters of randomness. IDs minted within the same millisecond by
// one provider carry a counter so they never collide.
type ULIDProvider struct {
	mu      sync.Mutex
	lastMs  int64
	counter uint16
	now     func() time.Time
}

// NewULIDProvider creates a ULIDProvider using the wall clock.
func NewULIDProvider() *ULIDProvider {
	return &ULIDProvider{now: time.Now}
}

// Next implements Provider.
func (p *ULIDProvider) Next() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ms := p.now().UnixMilli()
	if ms == p.lastMs {
		p.counter++
		if p.counter == 0 {
			// counter overflow, wait for the next millisecond
			for ms == p.lastMs {
				time.Sleep(time.Millisecond)
				ms = p.now().UnixMilli()
			}
			p.lastMs = ms
		}
	} else {
		p.lastMs = ms
		p.counter = 0
	}

	return encodeULID(ms, p.counter)
}

func encodeULID(ms int64, counter uint16) string {
	out := make([]byte, 26)

	for i := 9; i >= 0; i-- {
		out[i] = ulidEncoding[ms&0x1F]
		ms >>= 5
	}

	entropy := make([]byte, 10)
	_, _ = rand.Read(entropy)
	entropy[0] ^= byte(counter >> 8)
	entropy[1] ^= byte(counter)

	// 80 bits of entropy -> 16 base32 characters, 5 bits at a time.
	var acc uint64
	bits := 0
	pos := 10
	for _, b := range entropy {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = ulidEncoding[(acc>>uint(bits))&0x1F]
			pos++
		}
	}

	return string(out)
}

// IsValidULID reports whether s is a well-formed ULID.
func IsValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if decodeULIDChar(s[i]) < 0 {
			return false
		}
	}
	return true
}

// ULIDTime extracts the timestamp encoded in a ULID.
func ULIDTime(ulid string) (time.Time, error) {
	if !IsValidULID(ulid) {
		return time.Time{}, fmt.Errorf("invalid ULID: %s", ulid)
	}

	var ms int64
	for i := 0; i < 10; i++ {
		ms = ms<<5 | int64(decodeULIDChar(ulid[i]))
	}
	return time.UnixMilli(ms), nil
}

func decodeULIDChar(c byte) int {
	for i := 0; i < len(ulidEncoding); i++ {
		if ulidEncoding[i] == c {
			return i
		}
	}
	return -1
}
