package engine_test

import (
	"fmt"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

// ExampleCode_Element negates one coordinate of the e8 code: the fixed lattice is E7.
func ExampleCode_Element() {
	c, _ := code.Named("e8")
	e, _ := engine.NewCode(c, engine.WithRing(qseries.NewRing(qseries.WithPrecision(4))))
	g, _ := perm.ParseSigned(8, "() neg[1]")

	inv, err := e.Element(g)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("order:", inv.Order)
	fmt.Println("frame:", inv.Frame)
	fmt.Println("theta:", inv.Theta)
	fmt.Println("quotient:", inv.Quotient)

	// Output:
	// order: 2
	// frame: 1^6 2^1
	// theta: 1 + 126q + 756q^2 + 2072q^3 + O(q^4)
	// quotient: q^(-1/3) * (1 + 132q + 1540q^2 + 10240q^3 + O(q^4))
}
