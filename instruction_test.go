package qvm

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseInstruction(t *testing.T) {
	Convey("Given instruction text", t, func() {
		Convey("It should parse every form", func() {
			ins, err := ParseInstruction("init 2 1")
			So(err, ShouldBeNil)
			So(ins, ShouldResemble, Instruction{Op: OpInitialize, Args: []int{2, 1}})

			ins, err = ParseInstruction("measure 0 1")
			So(err, ShouldBeNil)
			So(ins.Op, ShouldEqual, OpMeasure)
			So(ins.Args, ShouldResemble, []int{0, 1})

			ins, err = ParseInstruction("gate cswap 2 0 1")
			So(err, ShouldBeNil)
			So(ins, ShouldResemble, Instruction{Op: OpGate, Gate: CSWAP, Args: []int{2, 0, 1}})

			ins, err = ParseInstruction("  H   3 ")
			So(err, ShouldBeNil)
			So(ins, ShouldResemble, Instruction{Op: OpGate, Gate: H, Args: []int{3}})
			So(ins.String(), ShouldEqual, "gate H 3")
		})

		Convey("It should reject malformed text", func() {
			for _, line := range []string{
				"",
				"init 0",
				"init 0 2",
				"measure",
				"gate",
				"gate toffoli 0 1 2",
				"swap 0",
				"H x",
				"teleport 0",
			} {
				_, err := ParseInstruction(line)
				So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			}
		})
	})

	Convey("Given a program listing", t, func() {
		listing := `
# prepare a Bell pair
init 0 0
init 1 0
H 0
CNOT 0 1

measure 0 1
`
		program, err := ParseProgram(strings.NewReader(listing))
		So(err, ShouldBeNil)
		So(program, ShouldHaveLength, 5)
		So(program[3].Gate, ShouldEqual, CNOT)

		Convey("Errors should carry the line number", func() {
			_, err := ParseProgram(strings.NewReader("init 0 0\nbogus 1\n"))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "line 2")
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a Bell pair program", t, func() {
		program, err := ParseProgram(strings.NewReader("init 0 0\ninit 1 0\nH 0\nCNOT 0 1\nmeasure 0 1\n"))
		So(err, ShouldBeNil)

		Convey("Both measured bits should agree", func() {
			for _, draw := range []float64{0.1, 0.9} {
				r := newTestRegister(2, draw)

				outcomes, err := r.Run(program)
				So(err, ShouldBeNil)
				So(outcomes, ShouldHaveLength, 2)
				So(outcomes[0], ShouldEqual, outcomes[1])
			}
		})
	})

	Convey("Given a program that measures a collapsed qubit", t, func() {
		r := newTestRegister(2, 0.4)
		program := []Instruction{
			{Op: OpInitialize, Args: []int{0, 1}},
			{Op: OpMeasure, Args: []int{0, 1}},
		}

		Convey("Run should stop with the bits measured so far", func() {
			outcomes, err := r.Run(program)
			So(errors.Is(err, ErrPreconditionFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "step 1")
			So(outcomes, ShouldResemble, []uint8{1})
		})
	})

	Convey("Given instructions built by hand", t, func() {
		r := newTestRegister(2)

		_, err := r.Execute(Instruction{Op: OpGate, Gate: SWAP, Args: []int{0}})
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

		_, err = r.Execute(Instruction{Op: Opcode(9)})
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

		measured, err := r.Execute(Instruction{Op: OpInitialize, Args: []int{1, 1}})
		So(err, ShouldBeNil)
		So(measured, ShouldBeNil)
		So(r.Basis(), ShouldResemble, []BasisAmplitude{{Index: 2, Amplitude: 1}})
	})
}
