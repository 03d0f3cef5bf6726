// Package entropy implements the process-wide entropy pool (component
// C1): a single SHA-512 sponge continuously mixed with jitter from the
// OS and the runtime, plus a bit-estimate gate protecting draws that
// feed key generation.
package entropy

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	ctrdrbg "github.com/sixafter/nanoid/x/crypto/ctrdrbg"

	"github.com/sqrlid/idcore/sqrlerr"
)

// NeededProduction is the default bit estimate required before a
// non-blocking Get succeeds; tests may drop it to NeededDebug via
// WithThreshold to avoid sleeping for entropy.
const (
	NeededProduction = 512
	NeededDebug      = 1
)

// bracketInterval is how often the background producer folds in a
// fresh bracket block.
const bracketInterval = 4 * time.Millisecond

// Pool is a mixed entropy source. The zero value is not usable; build
// one with New.
type Pool struct {
	mu        sync.Mutex
	state     [sha512.Size]byte
	estimate  int
	threshold int
	closed    bool
	stopCh    chan struct{}
	wg        sync.WaitGroup

	// fast is a pooled AES-CTR-DRBG reader backing Bytes: it never
	// blocks and never advances estimate.
	fast io.Reader
}

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithThreshold overrides the bit estimate required for a non-blocking
// Get. Tests use this to set NeededDebug.
func WithThreshold(bits int) Option {
	return func(p *Pool) { p.threshold = bits }
}

// New creates a Pool, seeds it from the OS CSPRNG, and starts the
// background bracket producer. Call Close to stop the producer.
func New(opts ...Option) (*Pool, error) {
	fast, err := ctrdrbg.NewReader()
	if err != nil {
		return nil, fmt.Errorf("entropy: init fast reader: %w", err)
	}

	p := &Pool{
		threshold: NeededProduction,
		stopCh:    make(chan struct{}),
		fast:      fast,
	}
	for _, o := range opts {
		o(p)
	}

	seed := make([]byte, 64)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("entropy: seed: %w", err)
	}
	p.mu.Lock()
	p.mixLocked(seed)
	p.estimate = p.threshold // a fresh OS-seeded pool starts "full"
	p.mu.Unlock()

	p.wg.Add(1)
	go p.produce()

	return p, nil
}

// Close stops the background producer. A closed pool may still serve
// Get/Bytes against whatever estimate remains; it just stops gaining more.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	close(p.stopCh)
	p.wg.Wait()
}

// Add folds externally supplied entropy into the pool. The caller's
// estimate of how many bits of real entropy buf contains is not
// tracked automatically; call AddEstimated if you want estimate() to
// reflect it.
func (p *Pool) Add(buf []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixLocked(buf)
}

// AddEstimated folds buf in and credits estimateBits to the running
// estimate. The credit is not capped; callers are trusted.
func (p *Pool) AddEstimated(buf []byte, estimateBits int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixLocked(buf)
	if estimateBits > 0 {
		p.estimate += estimateBits
	}
}

// Estimate returns the current bit estimate.
func (p *Pool) Estimate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.estimate
}

// Get draws n bytes without blocking. It fails with
// sqrlerr.ErrInsufficientEntropy if the current estimate is below the
// configured threshold.
func (p *Pool) Get(n int) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.estimate < p.threshold {
		return nil, fmt.Errorf("entropy: estimate %d below threshold %d: %w", p.estimate, p.threshold, sqrlerr.ErrInsufficientEntropy)
	}
	return p.drawLocked(n), nil
}

// GetBlocking waits until the estimate meets the threshold, then draws
// n bytes. It polls at bracketInterval granularity since the producer
// injects brackets on that cadence.
func (p *Pool) GetBlocking(n int) []byte {
	for {
		p.mu.Lock()
		if p.estimate >= p.threshold {
			out := p.drawLocked(n)
			p.mu.Unlock()
			return out
		}
		p.mu.Unlock()
		time.Sleep(bracketInterval)
	}
}

// Bytes draws n bytes from the fast, non-blocking path. It never fails
// and never advances or consumes the security-grade estimate: it is a
// plain CSPRNG draw, suitable for nonces and salts but not for
// long-term identity secrets.
func (p *Pool) Bytes(n int) []byte {
	buf := make([]byte, n)
	_, _ = io.ReadFull(p.fast, buf) // ctrdrbg.Reader never errors on full reads
	return buf
}

// drawLocked finalizes a copy of the sponge, emits n bytes from it via
// repeated SHA-512 expansion, then reseeds the live state with another
// bracket so the same output is never produced twice. Caller must hold mu.
func (p *Pool) drawLocked(n int) []byte {
	out := make([]byte, 0, n)
	ctr := uint64(0)
	block := p.state
	for len(out) < n {
		h := sha512.New()
		h.Write(block[:])
		var ctrBytes [8]byte
		for i := range ctrBytes {
			ctrBytes[i] = byte(ctr >> (8 * i))
		}
		h.Write(ctrBytes[:])
		sum := h.Sum(nil)
		out = append(out, sum...)
		ctr++
	}
	out = out[:n]

	p.mixLocked(bracket(nil))
	p.estimate -= n * 8
	if p.estimate < 0 {
		p.estimate = 0
	}
	return out
}

// mixLocked folds buf into the sponge state via SHA-512(state || buf).
// Caller must hold mu.
func (p *Pool) mixLocked(buf []byte) {
	h := sha512.New()
	h.Write(p.state[:])
	h.Write(buf)
	copy(p.state[:], h.Sum(nil))
}

func (p *Pool) produce() {
	defer p.wg.Done()
	t := time.NewTicker(bracketInterval)
	defer t.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case <-t.C:
			b := bracket(nil)
			p.mu.Lock()
			p.mixLocked(b)
			p.estimate += 8 // a bracket is worth a conservative single byte
			p.mu.Unlock()
		}
	}
}

// bracket mixes monotonic and wall clock samples, goroutine scheduling
// jitter, the process id, and an optional caller seed into one block.
// There is no portable RDTSC/RDRAND in the Go standard library; the
// runtime scheduling jitter captured via runtime.Gosched plus
// crypto/rand stand in for them, which keeps the floor at "OS
// randomness plus live jitter" as the spec requires even without
// inline assembly.
func bracket(seed []byte) []byte {
	var buf [96]byte
	now := time.Now()
	binaryPutUint64(buf[0:8], uint64(now.UnixNano()))
	binaryPutUint64(buf[8:16], uint64(now.Unix()))

	start := time.Now()
	runtime.Gosched()
	binaryPutUint64(buf[16:24], uint64(time.Since(start)))

	binaryPutUint64(buf[24:32], uint64(os.Getpid()))
	binaryPutUint64(buf[32:40], uint64(runtime.NumGoroutine()))

	var hw [32]byte
	_, _ = io.ReadFull(rand.Reader, hw[:])
	copy(buf[40:72], hw[:])

	if len(seed) > 0 {
		h := sha512.New()
		h.Write(buf[:])
		h.Write(seed)
		return h.Sum(nil)
	}
	return buf[:]
}

func binaryPutUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
