package qvm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Opcode uint8

const (
	OpInitialize Opcode = iota
	OpMeasure
	OpGate
)

func (op Opcode) String() string {
	switch op {
	case OpInitialize:
		return "init"
	case OpMeasure:
		return "measure"
	case OpGate:
		return "gate"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(op))
	}
}

/*
Instruction is one step of a register program.

  - OpInitialize: Args is [address, value]; promotes the qubit.
  - OpMeasure: Args is one or more addresses, measured one after another.
  - OpGate: Args are the gate's addresses, exactly Gate.Arity() of them.
*/
type Instruction struct {
	Op   Opcode
	Gate Gate
	Args []int
}

func (ins Instruction) String() string {
	parts := []string{ins.Op.String()}
	if ins.Op == OpGate {
		parts = append(parts, ins.Gate.String())
	}
	for _, arg := range ins.Args {
		parts = append(parts, strconv.Itoa(arg))
	}

	return strings.Join(parts, " ")
}

func (ins Instruction) validate() error {
	switch ins.Op {
	case OpInitialize:
		if len(ins.Args) != 2 {
			return fmt.Errorf("%w: init takes an address and a value, got %v", ErrInvalidArgument, ins.Args)
		}
		if ins.Args[1] != 0 && ins.Args[1] != 1 {
			return fmt.Errorf("%w: init value %d is not binary", ErrInvalidArgument, ins.Args[1])
		}
	case OpMeasure:
		if len(ins.Args) == 0 {
			return fmt.Errorf("%w: measure needs at least one address", ErrInvalidArgument)
		}
	case OpGate:
		if len(ins.Args) != ins.Gate.Arity() {
			return fmt.Errorf("%w: gate %s takes %d addresses, got %d", ErrInvalidArgument, ins.Gate, ins.Gate.Arity(), len(ins.Args))
		}
	default:
		return fmt.Errorf("%w: unknown opcode %d", ErrInvalidArgument, uint8(ins.Op))
	}

	return nil
}

/*
ParseInstruction reads a single text instruction:

	init <address> <value>
	measure <address> [<address>...]
	gate <name> <address>...

A bare gate name ("H 0", "cswap 0 1 2") is accepted as a gate instruction.
*/
func ParseInstruction(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("%w: empty instruction", ErrInvalidArgument)
	}

	var ins Instruction
	rest := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "init", "initialize":
		ins.Op = OpInitialize
	case "measure":
		ins.Op = OpMeasure
	case "gate":
		if len(rest) == 0 {
			return Instruction{}, fmt.Errorf("%w: gate instruction without a gate name", ErrInvalidArgument)
		}
		gate, err := ParseGate(rest[0])
		if err != nil {
			return Instruction{}, err
		}
		ins.Op, ins.Gate, rest = OpGate, gate, rest[1:]
	default:
		gate, err := ParseGate(fields[0])
		if err != nil {
			return Instruction{}, fmt.Errorf("%w: unknown instruction %q", ErrInvalidArgument, fields[0])
		}
		ins.Op, ins.Gate = OpGate, gate
	}

	for _, field := range rest {
		arg, err := strconv.Atoi(field)
		if err != nil {
			return Instruction{}, fmt.Errorf("%w: argument %q in %q", ErrInvalidArgument, field, line)
		}
		ins.Args = append(ins.Args, arg)
	}

	if err := ins.validate(); err != nil {
		return Instruction{}, err
	}

	return ins, nil
}

// ParseProgram reads one instruction per line, skipping blank lines and
// lines starting with '#'.
func ParseProgram(reader io.Reader) ([]Instruction, error) {
	var program []Instruction

	scanner := bufio.NewScanner(reader)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		ins, err := ParseInstruction(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		program = append(program, ins)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return program, nil
}

/*
Execute runs one instruction and returns the bits it measured, which is nil
for anything but OpMeasure. A multi-address measure stops at the first
failure and returns the bits measured before it.
*/
func (r *Register) Execute(ins Instruction) ([]uint8, error) {
	if err := ins.validate(); err != nil {
		return nil, err
	}

	switch ins.Op {
	case OpInitialize:
		_, err := r.Promote(ins.Args[0], uint8(ins.Args[1]))
		return nil, err
	case OpMeasure:
		outcomes := make([]uint8, 0, len(ins.Args))
		for _, address := range ins.Args {
			outcome, err := r.Measure(address)
			if err != nil {
				return outcomes, err
			}
			outcomes = append(outcomes, outcome)
		}
		return outcomes, nil
	default:
		return nil, r.ApplyGate(ins.Gate, ins.Args...)
	}
}

// Run executes program in order and collects every measured bit.
func (r *Register) Run(program []Instruction) ([]uint8, error) {
	var outcomes []uint8

	for step, ins := range program {
		measured, err := r.Execute(ins)
		outcomes = append(outcomes, measured...)
		if err != nil {
			return outcomes, fmt.Errorf("step %d (%s): %w", step, ins, err)
		}
	}

	return outcomes, nil
}
