// Package codegen mints short numeric identifiers (barcode codes, customer
// account codes) without a central sequence. Uniqueness is guaranteed by the
// caller re-reading the existing-code set on every retry round; the random
// candidate mixing and jittered backoff only shrink the collision window.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
)

// ErrExhaustedAttempts is returned when no unused code was found within the
// configured attempt and retry bounds.
var ErrExhaustedAttempts = errors.New("code generation exhausted all attempts")

// SnapshotFunc returns the current set of codes already in use. It is invoked
// once per retry round so concurrent mints since the previous round are seen.
type SnapshotFunc func(ctx context.Context) (map[string]struct{}, error)

// Strategy produces one candidate code from the current snapshot. It supplies
// only the candidate step; the attempt/retry machinery is shared.
type Strategy func(existing map[string]struct{}) string

// Generator runs a bounded candidate loop inside a bounded, jittered retry
// loop. The zero value is not usable; construct with New.
type Generator struct {
	// MaxAttempts bounds candidate generation within one retry round.
	MaxAttempts int
	// MaxRetries bounds the number of rounds, each against a fresh snapshot.
	MaxRetries int
}

const (
	defaultMaxAttempts = 1000
	defaultMaxRetries  = 3

	backoffMin = 50 * time.Millisecond
	backoffMax = 150 * time.Millisecond
)

func New() *Generator {
	return &Generator{MaxAttempts: defaultMaxAttempts, MaxRetries: defaultMaxRetries}
}

// Generate returns a code not present in the snapshot set, or
// ErrExhaustedAttempts after MaxRetries rounds of MaxAttempts candidates each.
// Between rounds it waits a random 50-150ms, yielding on ctx cancellation.
func (g *Generator) Generate(ctx context.Context, snapshot SnapshotFunc, strategy Strategy) (string, error) {
	for round := 0; round < g.MaxRetries; round++ {
		if round > 0 {
			if err := jitterWait(ctx); err != nil {
				return "", err
			}
		}

		existing, err := snapshot(ctx)
		if err != nil {
			return "", fmt.Errorf("codegen: snapshot existing codes: %w", err)
		}

		for attempt := 0; attempt < g.MaxAttempts; attempt++ {
			candidate := strategy(existing)
			if _, taken := existing[candidate]; !taken {
				return candidate, nil
			}
		}
	}
	return "", ErrExhaustedAttempts
}

func jitterWait(ctx context.Context) error {
	d := backoffMin + time.Duration(rand.Int64N(int64(backoffMax-backoffMin)))
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RandomNumeric returns a strategy that mixes a random integer with the
// sub-second clock component and keeps the last width digits, zero-padded.
// The time mixing lowers contention between concurrent callers that read the
// same snapshot.
func RandomNumeric(width int) Strategy {
	mod := pow10(width)
	return func(_ map[string]struct{}) string {
		n := rand.Int64N(mod)
		sub := time.Now().UnixMicro() % mod
		return fmt.Sprintf("%0*d", width, (n+sub)%mod)
	}
}

// NextSequential returns a strategy that computes
// max(existing numeric codes of the given width, floor) + 1, zero-padded.
// Existing codes that are not clean width-digit numerics are ignored.
// Monotonic by construction: within one snapshot the candidate can never
// collide, so the outer retry round (fresh snapshot) is the only race guard.
func NextSequential(width int, floor int64) Strategy {
	return func(existing map[string]struct{}) string {
		max := floor
		for code := range existing {
			n, ok := parseFixedNumeric(code, width)
			if ok && n > max {
				max = n
			}
		}
		return fmt.Sprintf("%0*d", width, max+1)
	}
}

// parseFixedNumeric parses a code that is exactly width ASCII digits.
func parseFixedNumeric(code string, width int) (int64, bool) {
	if len(code) != width {
		return 0, false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func pow10(width int) int64 {
	n := int64(1)
	for i := 0; i < width; i++ {
		n *= 10
	}
	return n
}
