// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainPart(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		want Location
		ok   bool
	}{
		{"here", Here(), Location{}, true},
		{"parachain-leading", NewLocation(1, Parachain(3000), Account([]byte("alice"))), NewLocation(1, Parachain(3000)), true},
		{"parents-only", NewLocation(1), Location{Parents: 1}, true},
		{"non-chain-at-root", NewLocation(0, GeneralKey([]byte("x"))), Location{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.loc.ChainPart()
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.True(t, got.Equal(tc.want))
			}
		})
	}
}

func TestNonChainPart(t *testing.T) {
	loc := NewLocation(1, Parachain(3000), Account([]byte("alice")))
	rest := loc.NonChainPart()
	require.Len(t, rest, 1)
	assert.True(t, rest[0].Equal(Account([]byte("alice"))))
}

func TestAppend(t *testing.T) {
	loc := NewLocation(1, Parachain(3000))
	out := loc.Append(Account([]byte("bob")))
	assert.Len(t, loc.Interior, 1, "Append must not mutate the receiver")
	assert.Len(t, out.Interior, 2)
}

func TestReanchorStripsParents(t *testing.T) {
	// Scenario 3 from the worked examples: a hub-relative location reanchored
	// onto a sibling's own root drops exactly the levels the sibling already
	// supplies.
	l := NewLocation(1, Parachain(4000))
	target := NewLocation(1)
	ancestry := NewLocation(1, Parachain(2000))

	out, err := Reanchor(l, target, ancestry)
	require.NoError(t, err)
	assert.True(t, out.Equal(NewLocation(0, Parachain(4000))))
}

func TestReanchorOntoHereIsNoop(t *testing.T) {
	l := NewLocation(1, Parachain(4000))
	out, err := Reanchor(l, Here(), NewLocation(1, Parachain(2000)))
	require.NoError(t, err)
	assert.True(t, out.Equal(l))
}

func TestReanchorSiblingPrependsAncestry(t *testing.T) {
	// l is expressed relative to self (0 parents): reanchoring onto a
	// cousin chain one level further up must prepend self's own ancestry
	// interior so the result reads correctly from the cousin's frame.
	l := NewLocation(0, Account([]byte("alice")))
	target := NewLocation(1, Parachain(3000))
	ancestry := NewLocation(1, Parachain(2000))

	out, err := Reanchor(l, target, ancestry)
	require.NoError(t, err)
	assert.True(t, out.Equal(NewLocation(0, Parachain(2000), Account([]byte("alice")))))
}

func TestReanchorTooShallowAncestryFails(t *testing.T) {
	l := NewLocation(0, Account([]byte("alice")))
	target := NewLocation(3, Parachain(3000))
	ancestry := NewLocation(1, Parachain(2000))

	_, err := Reanchor(l, target, ancestry)
	assert.ErrorIs(t, err, ErrCannotReanchor)
}

func TestCanonicalBytesDeterministic(t *testing.T) {
	a := NewLocation(1, Parachain(3000), Account([]byte("alice")))
	b := NewLocation(1, Parachain(3000), Account([]byte("alice")))
	assert.Equal(t, a.CanonicalBytes(), b.CanonicalBytes())

	c := NewLocation(1, Parachain(3001), Account([]byte("alice")))
	assert.NotEqual(t, a.CanonicalBytes(), c.CanonicalBytes())
}
