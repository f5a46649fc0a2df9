package qvm

import (
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
)

// MaxWidth bounds the register width; the amplitude array has 2^width entries.
const MaxWidth = 30

/*
Register simulates n qubits by holding one complex amplitude for each of the
2^n computational basis states, together with a classical/superposition tag
per qubit. Bit j of an amplitude index is the value of qubit j in that basis
state.

The register starts collapsed to |0...0⟩. Promote, ApplyGate and Measure are
the only mutators; between calls the amplitudes are unit-normalized and every
collapsed qubit's opposite subspace holds exactly zero.

Thread-safe: the amplitudes and tags are one unit guarded by a single lock.
*/
type Register struct {
	mu sync.RWMutex

	id         string
	width      int
	states     []QubitState
	amplitudes []complex128

	rng       RandomSource
	policy    PromotePolicy
	tolerance float64

	metrics *Metrics
	history []Transition
}

// RegisterOption configures a register at construction.
type RegisterOption func(*Register)

// WithRandomSource sets the source measurement draws from.
func WithRandomSource(source RandomSource) RegisterOption {
	return func(r *Register) {
		r.rng = source
	}
}

// WithSeed uses a PCG source seeded with seed.
func WithSeed(seed uint64) RegisterOption {
	return func(r *Register) {
		r.rng = NewRandomSource(seed)
	}
}

func WithTolerance(tolerance float64) RegisterOption {
	return func(r *Register) {
		r.tolerance = tolerance
	}
}

func WithPromotePolicy(policy PromotePolicy) RegisterOption {
	return func(r *Register) {
		r.policy = policy
	}
}

// WithConfig applies the seed, tolerance and promote policy of cfg. The width
// is still the one given to NewRegister.
func WithConfig(cfg *Config) RegisterOption {
	return func(r *Register) {
		r.rng = NewRandomSource(cfg.Seed)
		r.tolerance = cfg.Tolerance
		r.policy = cfg.PromotePolicy
	}
}

func NewRegister(width int, opts ...RegisterOption) (*Register, error) {
	if width < 1 || width > MaxWidth {
		return nil, fmt.Errorf("%w: width %d outside [1, %d]", ErrInvalidArgument, width, MaxWidth)
	}

	r := &Register{
		id:         uuid.New().String(),
		width:      width,
		states:     make([]QubitState, width),
		amplitudes: make([]complex128, 1<<width),
		policy:     MarkSuperposed,
		tolerance:  NewConfig().Tolerance,
		metrics:    newMetrics(),
	}
	r.amplitudes[0] = 1

	for _, opt := range opts {
		opt(r)
	}

	if r.rng == nil {
		r.rng = NewRandomSource(0)
	}

	errnie.Info("NewRegister - id %s, width %d, policy %v", r.id, r.width, r.policy)

	return r, nil
}

// NewRegisterFromConfig builds a register of cfg.Qubits qubits.
func NewRegisterFromConfig(cfg *Config) (*Register, error) {
	return NewRegister(cfg.Qubits, WithConfig(cfg))
}

func (r *Register) ID() string {
	return r.id
}

func (r *Register) Width() int {
	return r.width
}

func (r *Register) Metrics() *Metrics {
	return r.metrics
}

func (r *Register) checkAddress(address int) error {
	if address < 0 || address >= r.width {
		return fmt.Errorf("%w: address %d outside register of width %d", ErrInvalidArgument, address, r.width)
	}

	return nil
}

// State returns the tag of the qubit at address.
func (r *Register) State(address int) (QubitState, error) {
	if err := r.checkAddress(address); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.states[address], nil
}

// IsSuperposed is false for out of range addresses.
func (r *Register) IsSuperposed(address int) bool {
	state, err := r.State(address)
	return err == nil && state.IsSuperposed()
}

// Amplitudes returns a copy of the full amplitude array.
func (r *Register) Amplitudes() []complex128 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]complex128, len(r.amplitudes))
	copy(out, r.amplitudes)

	return out
}

// Probability is |amplitude|² of the basis state at index.
func (r *Register) Probability(index int) (float64, error) {
	if index < 0 || index >= 1<<r.width {
		return 0, fmt.Errorf("%w: basis index %d outside [0, %d)", ErrInvalidArgument, index, 1<<r.width)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return probability(r.amplitudes[index]), nil
}

// Norm is the sum of |amplitude|² over the register; 1 within tolerance.
func (r *Register) Norm() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, amplitude := range r.amplitudes {
		total += probability(amplitude)
	}

	return total
}

// BasisAmplitude pairs a basis index with its amplitude.
type BasisAmplitude struct {
	Index     int
	Amplitude complex128
}

// Basis lists every basis state with a non-zero amplitude, in index order.
func (r *Register) Basis() []BasisAmplitude {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []BasisAmplitude
	for index, amplitude := range r.amplitudes {
		if amplitude != 0 {
			out = append(out, BasisAmplitude{Index: index, Amplitude: amplitude})
		}
	}

	return out
}

// Dump renders tags and the non-zero basis states for diagnostics.
func (r *Register) Dump() string {
	basis := r.Basis()

	r.mu.RLock()
	states := make([]string, len(r.states))
	for i, s := range r.states {
		states[i] = s.String()
	}
	r.mu.RUnlock()

	return spew.Sdump(struct {
		ID     string
		Width  int
		States []string
		Basis  []BasisAmplitude
	}{r.id, r.width, states, basis})
}

// FormatIndex renders a basis index as a ket with qubit 0 rightmost.
func (r *Register) FormatIndex(index int) string {
	return fmt.Sprintf("|%0*b⟩", r.width, index)
}

func probability(amplitude complex128) float64 {
	return real(amplitude)*real(amplitude) + imag(amplitude)*imag(amplitude)
}
