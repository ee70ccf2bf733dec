package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/config"
	"github.com/katalvlaran/codeforms/driver"
	"github.com/katalvlaran/codeforms/engine"
	"github.com/katalvlaran/codeforms/perm"
	"github.com/katalvlaran/codeforms/qseries"
)

// Both strategies over every class of Aut(C) and every twist pattern of its cycles.
func TestStrategiesAgreeOnLargerCodes(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates every class of d16 and e8e8")
	}
	for _, name := range []string{"d16", "e8e8"} {
		t.Run(name, func(t *testing.T) {
			c, err := code.Named(name)
			require.NoError(t, err)
			r := qseries.NewRing(qseries.WithPrecision(3))
			ce, err := engine.NewCode(c, engine.WithRing(r))
			require.NoError(t, err)
			le, err := engine.NewLattice(c, engine.WithRing(r))
			require.NoError(t, err)
			g, err := c.AutGroup()
			require.NoError(t, err)

			checked := 0
			for _, cls := range perm.ConjugacyClasses(g) {
				for _, neg := range driver.SignPatterns(cls.Rep, config.SignsAll) {
					el := perm.Signed{P: cls.Rep, Neg: neg}
					a, err := ce.Element(el)
					require.NoError(t, err, el.String())
					b, err := le.Element(el)
					require.NoError(t, err, el.String())
					require.True(t, engine.Agree(a, b), "%s: %s vs %s", el, a.Theta, b.Theta)
					require.True(t, a.Quotient.Integral(), "%s: %s", el, a.Quotient)
					checked++
				}
			}
			require.Greater(t, checked, 100)
		})
	}
}
