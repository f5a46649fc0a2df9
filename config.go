package qvm

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

/*
PromotePolicy decides what promoting a qubit to the value it is already
collapsed at does to its tag. The amplitudes are never touched in that case.
*/
type PromotePolicy uint8

const (
	// MarkSuperposed flips the tag to Superposed, so gates may address the qubit.
	MarkSuperposed PromotePolicy = iota
	// KeepCollapsed reports success but leaves the tag collapsed.
	KeepCollapsed
)

func (p PromotePolicy) String() string {
	switch p {
	case MarkSuperposed:
		return "mark-superposed"
	case KeepCollapsed:
		return "keep-collapsed"
	default:
		return fmt.Sprintf("PromotePolicy(%d)", uint8(p))
	}
}

// ParsePromotePolicy accepts the names String produces.
func ParsePromotePolicy(name string) (PromotePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mark-superposed", "":
		return MarkSuperposed, nil
	case "keep-collapsed":
		return KeepCollapsed, nil
	default:
		return 0, fmt.Errorf("%w: unknown promote policy %q", ErrInvalidArgument, name)
	}
}

type Config struct {
	Qubits        int
	Seed          uint64
	Tolerance     float64
	PromotePolicy PromotePolicy
}

func NewConfig() *Config {
	return &Config{
		Qubits:        3,
		Tolerance:     1e-9,
		PromotePolicy: MarkSuperposed,
	}
}

/*
LoadConfig starts from NewConfig, applies any QVM_* keys found in the given
dotenv files, and then applies the process environment, which wins.
*/
func LoadConfig(files ...string) (*Config, error) {
	values := map[string]string{}

	if len(files) > 0 {
		fileValues, err := godotenv.Read(files...)
		if err != nil {
			return nil, fmt.Errorf("reading config files: %w", err)
		}
		values = fileValues
	}

	for _, key := range []string{"QVM_QUBITS", "QVM_SEED", "QVM_TOLERANCE", "QVM_PROMOTE_POLICY"} {
		if value, ok := os.LookupEnv(key); ok {
			values[key] = value
		}
	}

	cfg := NewConfig()

	if v, ok := values["QVM_QUBITS"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: QVM_QUBITS: %v", ErrInvalidArgument, err)
		}
		cfg.Qubits = n
	}

	if v, ok := values["QVM_SEED"]; ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: QVM_SEED: %v", ErrInvalidArgument, err)
		}
		cfg.Seed = seed
	}

	if v, ok := values["QVM_TOLERANCE"]; ok {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil || tol < 0 {
			return nil, fmt.Errorf("%w: QVM_TOLERANCE %q", ErrInvalidArgument, v)
		}
		cfg.Tolerance = tol
	}

	if v, ok := values["QVM_PROMOTE_POLICY"]; ok {
		policy, err := ParsePromotePolicy(v)
		if err != nil {
			return nil, err
		}
		cfg.PromotePolicy = policy
	}

	return cfg, nil
}
