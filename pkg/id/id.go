package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out ULIDs. Entropy is monotonic, so ids generated within
// the same millisecond still sort in creation order and never collide.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator returns a Generator seeded from crypto/rand.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGeneratorWith(rand.New(rand.NewSource(seed)), time.Now)
}

// NewGeneratorWith uses the given entropy source and clock. Tests use it to
// get reproducible ids.
func NewGeneratorWith(r io.Reader, now func() time.Time) *Generator {
	return &Generator{entropy: ulid.Monotonic(r, 0), now: now}
}

// New returns the next id.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		// Only possible when the clock goes backwards past the ULID epoch
		// or the entropy reader fails.
		panic(err)
	}
	return id.String()
}

var std = NewGenerator()

// New returns a ULID from the package generator.
func New() string { return std.New() }
