package main

import (
	"errors"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/theapemachine/qvm"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "qvm:", err)
		if errors.Is(err, qvm.ErrInvariantViolation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "qvm",
		Usage:     "run a program against a simulated qubit register",
		ArgsUsage: "[instruction ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env", Usage: "dotenv file with QVM_* settings"},
			&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}, Usage: "register width (overrides QVM_QUBITS)"},
			&cli.Uint64Flag{Name: "seed", Usage: "measurement seed, 0 for time based (overrides QVM_SEED)"},
			&cli.StringFlag{Name: "program", Aliases: []string{"f"}, Usage: "program file, - for stdin"},
			&cli.BoolFlag{Name: "dump", Usage: "print the full register dump instead of a table"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	var files []string
	if path := c.String("env"); path != "" {
		files = append(files, path)
	}

	cfg, err := qvm.LoadConfig(files...)
	if err != nil {
		return err
	}
	if c.IsSet("qubits") {
		cfg.Qubits = c.Int("qubits")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}

	program, err := loadProgram(c)
	if err != nil {
		return err
	}

	register, err := qvm.NewRegisterFromConfig(cfg)
	if err != nil {
		return err
	}

	outcomes, runErr := register.Run(program)

	out := c.App.Writer
	if len(outcomes) > 0 {
		bits := make([]string, len(outcomes))
		for i, bit := range outcomes {
			bits[i] = fmt.Sprint(bit)
		}
		fmt.Fprintf(out, "measured: %s\n", strings.Join(bits, " "))
	}

	if c.Bool("dump") {
		fmt.Fprint(out, register.Dump())
	} else {
		renderBasis(out, register)
	}

	return runErr
}

func loadProgram(c *cli.Context) ([]qvm.Instruction, error) {
	switch path := c.String("program"); path {
	case "":
		return qvm.ParseProgram(strings.NewReader(strings.Join(c.Args().Slice(), "\n")))
	case "-":
		return qvm.ParseProgram(c.App.Reader)
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return qvm.ParseProgram(file)
	}
}

func renderBasis(out io.Writer, register *qvm.Register) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"index", "basis", "amplitude", "probability"})

	for _, b := range register.Basis() {
		magnitude := cmplx.Abs(b.Amplitude)
		table.Append([]string{
			fmt.Sprint(b.Index),
			register.FormatIndex(b.Index),
			fmt.Sprintf("%.6f", b.Amplitude),
			fmt.Sprintf("%.6f", magnitude*magnitude),
		})
	}

	table.Render()
}
