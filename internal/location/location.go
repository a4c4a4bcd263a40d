// (c) 2023-2024, xcm-relay Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package location implements the hierarchical network address type used to
// identify chains, accounts, and asset families across the fabric, along
// with the reanchoring algebra used to rewrite a location from one chain's
// frame of reference into another's.
package location

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/sankar-boro/xcm-relay/internal/rerr"
)

// Re-exported for call sites that only import this package; identical
// sentinels to internal/rerr so errors.Is matches regardless of which
// import path a caller used.
var (
	ErrCannotReanchor  = rerr.ErrCannotReanchor
	ErrInvalidAncestry = rerr.ErrInvalidAncestry
	ErrBadVersion      = rerr.ErrBadVersion
)

// JunctionKind distinguishes the payload carried by a Junction.
type JunctionKind uint8

const (
	// JunctionParachain identifies a chain by its network index. A leading
	// Parachain junction is what chain_part() looks for.
	JunctionParachain JunctionKind = iota
	// JunctionAccount identifies a 32-byte account ID.
	JunctionAccount
	// JunctionAccountKey20 identifies a 20-byte (e.g. EVM) account.
	JunctionAccountKey20
	// JunctionPalletInstance identifies a runtime module by index.
	JunctionPalletInstance
	// JunctionGeneralIndex carries an opaque numeric index (e.g. an asset id).
	JunctionGeneralIndex
	// JunctionGeneralKey carries an opaque byte string.
	JunctionGeneralKey
)

// Junction is one segment of an interior path.
type Junction struct {
	Kind  JunctionKind
	Index uint64 // Parachain id, PalletInstance index, or GeneralIndex value
	Bytes []byte // Account / AccountKey20 / GeneralKey payload
}

func Parachain(id uint32) Junction { return Junction{Kind: JunctionParachain, Index: uint64(id)} }
func Account(id []byte) Junction {
	b := make([]byte, len(id))
	copy(b, id)
	return Junction{Kind: JunctionAccount, Bytes: b}
}
func AccountKey20(addr []byte) Junction {
	b := make([]byte, len(addr))
	copy(b, addr)
	return Junction{Kind: JunctionAccountKey20, Bytes: b}
}
func PalletInstance(index uint8) Junction {
	return Junction{Kind: JunctionPalletInstance, Index: uint64(index)}
}
func GeneralIndex(i uint64) Junction { return Junction{Kind: JunctionGeneralIndex, Index: i} }
func GeneralKey(key []byte) Junction {
	b := make([]byte, len(key))
	copy(b, key)
	return Junction{Kind: JunctionGeneralKey, Bytes: b}
}

// Equal reports whether two junctions carry the same kind and payload.
func (j Junction) Equal(o Junction) bool {
	return j.Kind == o.Kind && j.Index == o.Index && bytes.Equal(j.Bytes, o.Bytes)
}

// CanonicalBytes returns a deterministic byte encoding used for sorting and
// hashing. It is not a wire format.
func (j Junction) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(j.Kind))
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], j.Index)
	buf.Write(idx[:])
	buf.Write(j.Bytes)
	return buf.Bytes()
}

func (j Junction) String() string {
	switch j.Kind {
	case JunctionParachain:
		return fmt.Sprintf("Parachain(%d)", j.Index)
	case JunctionAccount:
		return fmt.Sprintf("Account(%x)", j.Bytes)
	case JunctionAccountKey20:
		return fmt.Sprintf("AccountKey20(%x)", j.Bytes)
	case JunctionPalletInstance:
		return fmt.Sprintf("PalletInstance(%d)", j.Index)
	case JunctionGeneralIndex:
		return fmt.Sprintf("GeneralIndex(%d)", j.Index)
	case JunctionGeneralKey:
		return fmt.Sprintf("GeneralKey(%x)", j.Bytes)
	default:
		return "Junction(?)"
	}
}

// Location is a hierarchical identifier: Parents levels up the network
// hierarchy, followed by an ordered Interior path of junctions.
type Location struct {
	Parents  uint8
	Interior []Junction
}

// Here is the relative root: zero parents, empty interior.
func Here() Location { return Location{} }

// NewLocation builds a location from parents and junctions.
func NewLocation(parents uint8, interior ...Junction) Location {
	return Location{Parents: parents, Interior: append([]Junction(nil), interior...)}
}

// Equal reports structural equality of both parts.
func (l Location) Equal(o Location) bool {
	if l.Parents != o.Parents || len(l.Interior) != len(o.Interior) {
		return false
	}
	for i := range l.Interior {
		if !l.Interior[i].Equal(o.Interior[i]) {
			return false
		}
	}
	return true
}

// CanonicalBytes returns a deterministic byte encoding used for sorting and
// hashing.
func (l Location) CanonicalBytes() []byte {
	var buf bytes.Buffer
	buf.WriteByte(l.Parents)
	for _, j := range l.Interior {
		jb := j.CanonicalBytes()
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(jb)))
		buf.Write(n[:])
		buf.Write(jb)
	}
	return buf.Bytes()
}

func (l Location) String() string {
	s := fmt.Sprintf("{parents:%d, interior:[", l.Parents)
	for i, j := range l.Interior {
		if i > 0 {
			s += ", "
		}
		s += j.String()
	}
	return s + "]}"
}

// ChainPart returns the prefix identifying a whole chain: Parents plus a
// leading Parachain junction, if present, or the empty relative root
// (Parents==0, no interior). Returns ok=false if the location carries
// neither — e.g. it starts with a non-chain junction at the absolute root.
func (l Location) ChainPart() (Location, bool) {
	if len(l.Interior) == 0 {
		return Location{Parents: l.Parents}, true
	}
	if l.Interior[0].Kind == JunctionParachain {
		return Location{Parents: l.Parents, Interior: l.Interior[:1]}, true
	}
	if l.Parents > 0 {
		// A relative location ascending into the network with no chain
		// junction at the front still names a chain: the parent level itself.
		return Location{Parents: l.Parents}, true
	}
	return Location{}, false
}

// NonChainPart returns the trailing interior left after ChainPart.
func (l Location) NonChainPart() []Junction {
	if len(l.Interior) > 0 && l.Interior[0].Kind == JunctionParachain {
		return append([]Junction(nil), l.Interior[1:]...)
	}
	return append([]Junction(nil), l.Interior...)
}

// Append extends the interior with additional junctions, returning a new
// Location; the receiver is left untouched.
func (l Location) Append(junctions ...Junction) Location {
	out := make([]Junction, 0, len(l.Interior)+len(junctions))
	out = append(out, l.Interior...)
	out = append(out, junctions...)
	return Location{Parents: l.Parents, Interior: out}
}

// WithParents returns a copy with Parents replaced.
func (l Location) WithParents(parents uint8) Location {
	return Location{Parents: parents, Interior: append([]Junction(nil), l.Interior...)}
}

// Reanchor rewrites l so that it is expressed relative to target, given
// ancestry — this chain's own absolute address (as Append'd to target's
// frame when target is a sibling/cousin rather than an ancestor).
//
// Three cases, matching the source algebra:
//  1. target is an ancestor of l's frame (l.Parents >= target's relative
//     distance): strip that many Parents levels.
//  2. target is this chain itself (Parents==0 after viewing l from self):
//     no-op.
//  3. target is a sibling/cousin: prepend ancestry's interior and adjust
//     Parents so the result is expressed from target's own root.
//
// Fails with ErrCannotReanchor if l and target are in frames that cannot be
// reconciled (l ascends higher than ancestry can supply, i.e. ancestry
// itself is not deep enough to re-root into).
func Reanchor(l, target, ancestry Location) (Location, error) {
	if target.Parents == 0 && len(target.Interior) == 0 {
		// Reanchoring onto the relative root (this chain itself) leaves l
		// unchanged; nothing to rewrite.
		return l, nil
	}

	// Case 1: l already ascends at least as far as target requires beyond
	// self — strip target's parents off l's parents count and keep l's
	// interior as-is, re-expressed with the remaining ascent.
	if l.Parents >= target.Parents {
		remaining := l.Parents - target.Parents
		return Location{Parents: remaining, Interior: append([]Junction(nil), l.Interior...)}, nil
	}

	// Case 2/3: l is expressed relative to self (fewer parents than
	// target needs). Re-root through ancestry: the result is expressed as
	// (target.Parents - l.Parents) levels up from target, prefixed with
	// whatever part of ancestry's interior sits between target and self,
	// followed by l's own interior.
	if target.Parents < ancestry.Parents {
		return Location{}, fmt.Errorf("%w: target is not reachable from ancestry %s", ErrInvalidAncestry, ancestry)
	}
	upFromAncestryToTarget := target.Parents - ancestry.Parents
	if upFromAncestryToTarget > uint8(len(ancestry.Interior)) {
		return Location{}, fmt.Errorf("%w: ancestry %s too shallow for target %s", ErrCannotReanchor, ancestry, target)
	}
	// ancestry.Interior, viewed from target's frame, is however many
	// junctions remain once we've ascended upFromAncestryToTarget levels
	// out of ancestry's own leaf position.
	prefix := ancestry.Interior
	if int(upFromAncestryToTarget) > 0 {
		if int(upFromAncestryToTarget) > len(prefix) {
			return Location{}, fmt.Errorf("%w: ancestry %s too shallow for target %s", ErrCannotReanchor, ancestry, target)
		}
		prefix = prefix[:len(prefix)-int(upFromAncestryToTarget)]
	}
	out := make([]Junction, 0, len(prefix)+len(l.Interior))
	out = append(out, prefix...)
	out = append(out, l.Interior...)
	return Location{Parents: 0, Interior: out}, nil
}
