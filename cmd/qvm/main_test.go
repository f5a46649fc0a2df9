package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/theapemachine/qvm"
)

func TestApp(t *testing.T) {
	Convey("Given the qvm command", t, func() {
		var out bytes.Buffer
		app := newApp()
		app.Writer = &out

		Convey("Instructions passed as arguments should run and print the basis", func() {
			err := app.Run([]string{"qvm", "--qubits", "2", "--seed", "3", "init 0 1", "init 1 0", "SWAP 0 1"})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "|10⟩")
		})

		Convey("A program on stdin should report measured bits", func() {
			app.Reader = strings.NewReader("init 0 1\nmeasure 0\n")
			err := app.Run([]string{"qvm", "-n", "1", "--program", "-"})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "measured: 1")
		})

		Convey("The dump flag should print the register dump", func() {
			err := app.Run([]string{"qvm", "-n", "1", "--dump", "init 0 0"})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "superposed")
		})

		Convey("A failing program should return the register error", func() {
			err := app.Run([]string{"qvm", "-n", "1", "measure 0"})
			So(errors.Is(err, qvm.ErrPreconditionFailed), ShouldBeTrue)
		})
	})
}
