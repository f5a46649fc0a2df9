package qvm

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func squaredNorm(v []complex128) float64 {
	var total float64
	for _, amplitude := range v {
		total += probability(amplitude)
	}
	return total
}

func randomVector(rng *rand.Rand, size int) []complex128 {
	v := make([]complex128, size)
	for i := range v {
		v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return v
}

func TestGateCatalog(t *testing.T) {
	Convey("Given the gate catalog", t, func() {
		Convey("Arity should match the defined transforms", func() {
			So(H.Arity(), ShouldEqual, 1)
			So(X.Arity(), ShouldEqual, 1)
			So(Z.Arity(), ShouldEqual, 1)
			So(SWAP.Arity(), ShouldEqual, 2)
			So(CNOT.Arity(), ShouldEqual, 2)
			So(CSWAP.Arity(), ShouldEqual, 3)
			So(Gate(200).Arity(), ShouldEqual, 0)
		})

		Convey("ParseGate should look names up without case", func() {
			for _, gate := range Gates() {
				parsed, err := ParseGate(gate.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, gate)
			}

			gate, err := ParseGate("cswap")
			So(err, ShouldBeNil)
			So(gate, ShouldEqual, CSWAP)

			_, err = ParseGate("toffoli")
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("Every gate should preserve the squared norm", func() {
			rng := rand.New(rand.NewPCG(11, 17))

			for _, gate := range Gates() {
				for trial := 0; trial < 50; trial++ {
					in := randomVector(rng, 1<<gate.Arity())
					out, err := gate.Apply(in)
					So(err, ShouldBeNil)
					So(squaredNorm(out), ShouldAlmostEqual, squaredNorm(in), 1e-9)
				}
			}
		})

		Convey("Apply should reject a wrongly sized vector", func() {
			_, err := SWAP.Apply(make([]complex128, 2))
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, err = Gate(200).Apply(make([]complex128, 2))
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("Apply should not modify its input", func() {
			in := []complex128{1, 2, 3, 4, 5, 6, 7, 8}
			_, err := CSWAP.Apply(in)
			So(err, ShouldBeNil)
			So(in, ShouldResemble, []complex128{1, 2, 3, 4, 5, 6, 7, 8})
		})
	})

	Convey("Given concrete inputs", t, func() {
		Convey("H should mix the two amplitudes", func() {
			out, err := H.Apply([]complex128{0, 1})
			So(err, ShouldBeNil)
			So(real(out[0]), ShouldAlmostEqual, 1/math.Sqrt2)
			So(real(out[1]), ShouldAlmostEqual, -1/math.Sqrt2)
			So(imag(out[0]), ShouldEqual, 0.0)
		})

		Convey("X and Z should flip and phase", func() {
			out, _ := X.Apply([]complex128{1, 2})
			So(out, ShouldResemble, []complex128{2, 1})

			out, _ = Z.Apply([]complex128{1, 2})
			So(out, ShouldResemble, []complex128{1, -2})
		})

		Convey("SWAP should exchange sub-indices 1 and 2", func() {
			out, _ := SWAP.Apply([]complex128{1, 2, 3, 4})
			So(out, ShouldResemble, []complex128{1, 3, 2, 4})
		})

		Convey("CNOT should exchange sub-indices 1 and 3", func() {
			out, _ := CNOT.Apply([]complex128{1, 2, 3, 4})
			So(out, ShouldResemble, []complex128{1, 4, 3, 2})
		})

		Convey("CSWAP should only exchange sub-indices 5 and 6", func() {
			out, _ := CSWAP.Apply([]complex128{0, 1, 2, 3, 4, 5, 6, 7})
			So(out, ShouldResemble, []complex128{0, 1, 2, 3, 4, 6, 5, 7})
		})
	})
}
