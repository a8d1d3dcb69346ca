// Package bip32 implements hierarchical deterministic child-key
// derivation on top of the secp256k1 core and the hashes package: a
// child's scalar is d' = (IL + d) mod n where IL is the first half of
// HMAC-SHA-512(chainCode, data), and data depends on whether the
// requested index is hardened.
package bip32

import (
	"errors"

	"github.com/nayuki/bitcoin-crypto-go/base58check"
	"github.com/nayuki/bitcoin-crypto-go/hashes"
	secp256k1 "github.com/nayuki/bitcoin-crypto-go"
)

// HardenedBit marks a child index as hardened: derivation runs on the
// parent's private scalar rather than its public point, so a hardened
// child cannot be produced from a public-only extended key.
const HardenedBit uint32 = 0x80000000

var (
	// ErrInvalidChild is returned by DeriveChild when IL >= n or the
	// derived scalar is zero, per BIP-32's retry-with-next-index rule.
	// The probability of hitting this is below 2^-127.
	ErrInvalidChild = errors.New("bip32: derived key invalid, retry with next index")
	// ErrMaxDepthExceeded is returned when deriving past depth 255.
	ErrMaxDepthExceeded = errors.New("bip32: maximum derivation depth exceeded")
)

// ExtendedKey is a BIP-32 extended private key: a scalar paired with the
// chain code and provenance bookkeeping needed to derive its children
// and to serialize it as an xprv string.
type ExtendedKey struct {
	D                 secp256k1.U256
	ChainCode         [32]byte
	Depth             uint8
	Index             uint32
	ParentFingerprint [4]byte
}

// NewMasterKey derives the master extended key from a seed, using the
// BIP-32 master-key generation rule: I = HMAC-SHA-512("Bitcoin seed", seed),
// IL becomes the master scalar and IR the master chain code.
func NewMasterKey(seed []byte) (ExtendedKey, error) {
	i := hashes.HMACSHA512([]byte("Bitcoin seed"), seed)
	var il [32]byte
	copy(il[:], i[:32])
	d, err := secp256k1.NewU256FromBigEndianBytes(il[:])
	if err != nil {
		return ExtendedKey{}, err
	}
	if d.IsZero() || !d.Less(&secp256k1.CurveOrderN) {
		return ExtendedKey{}, ErrInvalidChild
	}

	var k ExtendedKey
	k.D = d
	copy(k.ChainCode[:], i[32:])
	return k, nil
}

// IsHardened reports whether index designates a hardened child.
func IsHardened(index uint32) bool {
	return index&HardenedBit != 0
}

// PublicPoint returns the point d*G for this key's private scalar,
// normalized, which is also the value serialized as this key's public
// half and hashed to compute a child's parent fingerprint.
func (k *ExtendedKey) PublicPoint() secp256k1.Point {
	return secp256k1.PrivateExponentToPublicPoint(&k.D)
}

// fingerprint returns the first 4 bytes of Hash160 of the compressed
// public key, the value BIP-32 uses to identify a parent in its child's
// ParentFingerprint field.
func (k *ExtendedKey) fingerprint() [4]byte {
	pub := k.PublicPoint()
	var comp [33]byte
	pub.ToCompressedPoint(&comp)
	h := hashes.Hash160(comp[:])
	var out [4]byte
	copy(out[:], h[:4])
	return out
}

// DeriveChild computes the child extended key at the given index. Per
// BIP-32, a hardened index derives from 0x00 ‖ ser256(d) ‖ ser32(index);
// a normal index derives from serP(d·G) ‖ ser32(index). ErrInvalidChild
// signals the one-in-2^127 case the caller must handle by retrying with
// index+1.
func (k *ExtendedKey) DeriveChild(index uint32) (ExtendedKey, error) {
	if k.Depth == 0xff {
		return ExtendedKey{}, ErrMaxDepthExceeded
	}

	data := make([]byte, 0, 37)
	if IsHardened(index) {
		var db [32]byte
		k.D.GetBigEndianBytes(&db)
		data = append(data, 0x00)
		data = append(data, db[:]...)
	} else {
		pub := k.PublicPoint()
		var comp [33]byte
		pub.ToCompressedPoint(&comp)
		data = append(data, comp[:]...)
	}
	var idx [4]byte
	idx[0] = byte(index >> 24)
	idx[1] = byte(index >> 16)
	idx[2] = byte(index >> 8)
	idx[3] = byte(index)
	data = append(data, idx[:]...)

	i := hashes.HMACSHA512(k.ChainCode[:], data)
	var ilBytes [32]byte
	copy(ilBytes[:], i[:32])
	il, err := secp256k1.NewU256FromBigEndianBytes(ilBytes[:])
	if err != nil {
		return ExtendedKey{}, err
	}
	if !il.Less(&secp256k1.CurveOrderN) {
		return ExtendedKey{}, ErrInvalidChild
	}

	childD := il
	carry := childD.Add(&k.D, 1)
	enable := carry | boolToBit(!childD.Less(&secp256k1.CurveOrderN))
	childD.Subtract(&secp256k1.CurveOrderN, enable)
	if childD.IsZero() {
		return ExtendedKey{}, ErrInvalidChild
	}

	var child ExtendedKey
	child.D = childD
	copy(child.ChainCode[:], i[32:])
	child.Depth = k.Depth + 1
	child.Index = index
	child.ParentFingerprint = k.fingerprint()
	return child, nil
}

func boolToBit(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// DerivePath walks a sequence of child indices from k in order, applying
// DeriveChild at each step. It returns as soon as any step fails.
func (k *ExtendedKey) DerivePath(path []uint32) (ExtendedKey, error) {
	cur := *k
	var err error
	for _, index := range path {
		cur, err = cur.DeriveChild(index)
		if err != nil {
			return ExtendedKey{}, err
		}
	}
	return cur, nil
}

// Serialize encodes k as a Base58Check xprv string.
func (k *ExtendedKey) Serialize() string {
	var db [32]byte
	k.D.GetBigEndianBytes(&db)
	return base58check.EncodeExtendedPrivateKey(base58check.ExtendedKeyPayload{
		Depth:             k.Depth,
		ParentFingerprint: k.ParentFingerprint,
		ChildIndex:        k.Index,
		ChainCode:         k.ChainCode,
		PrivateKey:        db,
	})
}

// ParseExtendedKey decodes a Base58Check xprv string into an ExtendedKey.
func ParseExtendedKey(s string) (ExtendedKey, error) {
	payload, ok := base58check.DecodeExtendedPrivateKey(s)
	if !ok {
		return ExtendedKey{}, errors.New("bip32: malformed extended private key")
	}
	d, err := secp256k1.NewU256FromBigEndianBytes(payload.PrivateKey[:])
	if err != nil {
		return ExtendedKey{}, err
	}
	if d.IsZero() || !d.Less(&secp256k1.CurveOrderN) {
		return ExtendedKey{}, errors.New("bip32: extended private key scalar out of range")
	}
	return ExtendedKey{
		D:                 d,
		ChainCode:         payload.ChainCode,
		Depth:             payload.Depth,
		Index:             payload.ChildIndex,
		ParentFingerprint: payload.ParentFingerprint,
	}, nil
}
