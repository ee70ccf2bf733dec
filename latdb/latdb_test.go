package latdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/code"
	"github.com/katalvlaran/codeforms/latdb"
	"github.com/katalvlaran/codeforms/lattice"
	"github.com/katalvlaran/codeforms/perm"
)

func TestBundledDeterminants(t *testing.T) {
	db, err := latdb.Load()
	require.NoError(t, err)
	require.NotEmpty(t, db.Entries())

	dets := map[string]int64{
		"A1": 2, "A4": 5, "A8": 9, "D4": 4, "D5": 4, "D16": 4,
		"E6": 3, "E7": 2, "E8": 1, "E8+E8": 1, "E7+A1": 4, "E8(2)": 256,
	}
	for name, det := range dets {
		e := db.Get(name)
		require.NotNil(t, e, name)
		require.Equal(t, det, e.Det().Int64(), name)
	}
	require.Nil(t, db.Get("Leech"))
}

func TestThetaPrefix(t *testing.T) {
	db, err := latdb.Load()
	require.NoError(t, err)
	s, err := db.Theta(db.Get("E8"))
	require.NoError(t, err)
	require.Equal(t, []int64{1, 240, 2160}, s.Int64s())
	s, err = db.Theta(db.Get("D6+A1^2"))
	require.NoError(t, err)
	require.Equal(t, int64(64), s.Int64s()[1])
}

func TestWarm(t *testing.T) {
	db, err := latdb.Load()
	require.NoError(t, err)
	require.NoError(t, db.Warm(context.Background(), 4))
	s, err := db.Theta(db.Get("E7"))
	require.NoError(t, err)
	require.Equal(t, []int64{1, 126, 756}, s.Int64s())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fresh, err := latdb.Load()
	require.NoError(t, err)
	require.ErrorIs(t, fresh.Warm(ctx, 2), context.Canceled)
}

// TestWarmMatchesSerialTheta runs every enumeration concurrently and compares
// each prefix with one computed on the database's own ring.
func TestWarmMatchesSerialTheta(t *testing.T) {
	warm, err := latdb.Load()
	require.NoError(t, err)
	require.NoError(t, warm.Warm(context.Background(), 0))

	serial, err := latdb.Load()
	require.NoError(t, err)
	for _, e := range serial.Entries() {
		want, err := serial.Theta(e)
		require.NoError(t, err)
		got, err := warm.Theta(warm.Get(e.Name))
		require.NoError(t, err)
		require.True(t, want.Equal(got), "%s: %v != %v", e.Name, got, want)
	}
}

func TestLookup(t *testing.T) {
	db, err := latdb.Load()
	require.NoError(t, err)
	c, err := code.Named("e8")
	require.NoError(t, err)
	l, err := lattice.FromCode(c)
	require.NoError(t, err)

	names, err := db.Lookup(l)
	require.NoError(t, err)
	require.Equal(t, []string{"E8"}, names)

	eps, err := perm.ParseSigned(8, "() neg[1]")
	require.NoError(t, err)
	fix, err := lattice.Fixed(l, eps.Matrix())
	require.NoError(t, err)
	names, err = db.Lookup(fix)
	require.NoError(t, err)
	require.Equal(t, []string{"E7"}, names)

	d4, err := latdb.Build([]string{"D4"}, 2)
	require.NoError(t, err)
	names, err = db.Lookup(d4)
	require.NoError(t, err)
	require.Equal(t, []string{"D4(2)"}, names)

	names, err = db.Lookup(nil)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestParseErrors(t *testing.T) {
	_, err := latdb.Parse([]byte("lattices:\n  - {name: X, components: [F4]}\n"))
	require.ErrorIs(t, err, latdb.ErrBadComponent)

	_, err = latdb.Parse([]byte("lattices:\n  - {name: X, components: [A1^x]}\n"))
	require.ErrorIs(t, err, latdb.ErrBadComponent)

	_, err = latdb.Parse([]byte("lattices:\n  - {name: X, components: [A1]}\n  - {name: X, components: [A2]}\n"))
	require.ErrorIs(t, err, latdb.ErrDuplicate)

	_, err = latdb.Cartan("D2")
	require.ErrorIs(t, err, latdb.ErrBadComponent)

	require.Panics(t, func() { latdb.WithPrecision(0) })
}
