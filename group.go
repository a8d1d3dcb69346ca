package secp256k1

// CurveOrderN is n, the order of the generator point G — a 256-bit prime.
var CurveOrderN = mustU256Hex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

func mustU256Small(v uint32) U256 {
	var u U256
	u.w[0] = v
	return u
}

// curveB is the secp256k1 curve equation constant b in y^2 = x^3 + b (a is
// always 0 for this curve).
var curveB = Fp{v: mustU256Small(7)}

// Generator is the standardized secp256k1 base point G, already
// normalized (Z = 1).
var Generator = Point{
	X: NewFpFromU256(mustU256Hex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798")),
	Y: NewFpFromU256(mustU256Hex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8")),
	Z: FpOne,
}

// PointZero is the unique identity encoding this library uses: (0, 1, 0).
// No other (X, Y, 0) triple is a valid point.
var PointZero = Point{X: FpZero, Y: FpOne, Z: FpZero}

// Point is a secp256k1 group element in projective (X:Y:Z) coordinates.
// When Z != 0 the affine coordinates are (X/Z, Y/Z). A Point is
// normalized iff Z = 1 or the value equals PointZero. Point is a mutable
// value type.
type Point struct {
	X, Y, Z Fp
}

// IsZero reports whether p is the identity, i.e. (X = 0) AND (Y != 0) AND
// (Z = 0) — the only shape this library uses for point-at-infinity. Any
// other input with Z = 0 is outside the type's contract.
func (p *Point) IsZero() bool {
	return p.X.IsZero() && !p.Y.IsZero() && p.Z.IsZero()
}

func (p *Point) isZeroBit() uint32 {
	return boolToBit(p.IsZero())
}

// IsOnCurve reports whether p, which must already be normalized, lies on
// y^2 = x^3 + 7 and is not the identity. Like Equal and
// ToCompressedPoint, this is only meaningful on normalized input; it is
// otherwise constant-time.
func (p *Point) IsOnCurve() bool {
	if p.IsZero() {
		return false
	}
	y2 := p.Y
	y2.Square()
	x3 := p.X
	x3.Square()
	x3.Multiply(&p.X)
	x3.Add(&curveB)
	return y2.Equal(&x3)
}

// Equal compares two normalized points field-wise. The identity's
// normalized form is unique, so this is a total equality test on
// normalized values.
func (p *Point) Equal(other *Point) bool {
	return p.X.Equal(&other.X) && p.Y.Equal(&other.Y) && p.Z.Equal(&other.Z)
}

// Replace performs a field-wise conditional copy.
func (p *Point) Replace(other *Point, enable uint32) {
	p.X.Replace(&other.X, enable)
	p.Y.Replace(&other.Y, enable)
	p.Z.Replace(&other.Z, enable)
}

// Add computes self <- self + other, constant-time. other may alias
// self. The special cases self = O, other = O, self = -other, and
// self = other are all computed (never branched on) and selected with
// data-oblivious masks.
func (p *Point) Add(other *Point) {
	pZero := p.isZeroBit()
	qZero := other.isZeroBit()

	doubled := *p
	doubled.Double()

	temp := *p
	useQ := (1 - qZero) & pZero
	useDouble := (1 - qZero) & (1 - pZero)
	temp.Replace(other, useQ)
	temp.Replace(&doubled, useDouble)

	u0 := p.X
	u0.Multiply(&other.Z)
	u1 := other.X
	u1.Multiply(&p.Z)
	t0 := p.Y
	t0.Multiply(&other.Z)
	t1 := other.Y
	t1.Multiply(&p.Z)

	sameX := u0.Equal(&u1)
	sameY := t0.Equal(&t1)

	t := t0
	t.Subtract(&t1)
	u := u0
	u.Subtract(&u1)
	u2 := u
	u2.Square()
	v := p.Z
	v.Multiply(&other.Z)

	w := t
	w.Square()
	w.Multiply(&v)
	sumU := u0
	sumU.Add(&u1)
	u2sumU := u2
	u2sumU.Multiply(&sumU)
	w.Subtract(&u2sumU)

	u3 := u
	u3.Multiply(&u2)

	xNew := u
	xNew.Multiply(&w)

	u0u2 := u0
	u0u2.Multiply(&u2)
	innerY := u0u2
	innerY.Subtract(&w)
	yNew := t
	yNew.Multiply(&innerY)
	t0u3 := t0
	t0u3.Multiply(&u3)
	yNew.Subtract(&t0u3)

	zNew := v
	zNew.Multiply(&u3)

	result := Point{X: xNew, Y: yNew, Z: zNew}

	useTemp := pZero | qZero | boolToBit(sameX)
	result.Replace(&temp, useTemp)

	useZero := boolToBit(sameX) & (1 - boolToBit(sameY)) & (1 - pZero) & (1 - qZero)
	result.Replace(&PointZero, useZero)

	*p = result
}

// Double computes self <- 2*self, constant-time, using the a = 0
// doubling formula.
func (p *Point) Double() {
	zeroResult := p.isZeroBit() | boolToBit(p.Y.IsZero())

	u := p.Y
	u.Multiply(&p.Z)
	u.Double()

	v := u
	v.Multiply(&p.X)
	v.Multiply(&p.Y)
	v.Double()

	xsq := p.X
	xsq.Square()
	t := xsq
	t.Double()
	t.Add(&xsq)

	w := t
	w.Square()
	twoV := v
	twoV.Double()
	w.Subtract(&twoV)

	xNew := u
	xNew.Multiply(&w)

	vMinusW := v
	vMinusW.Subtract(&w)
	yNew := t
	yNew.Multiply(&vMinusW)
	uy := u
	uy.Multiply(&p.Y)
	uy.Square()
	uy.Double()
	yNew.Subtract(&uy)

	zNew := u
	zNew.Square()
	zNew.Multiply(&u)

	result := Point{X: xNew, Y: yNew, Z: zNew}
	result.Replace(&PointZero, zeroResult)
	*p = result
}

// extractWindow reads the 4-bit window covering bits [bitIndex, bitIndex+3]
// of scalar (bit 0 is the least significant bit of word 0). bitIndex is a
// loop counter, always public; the extracted value is secret and is
// computed arithmetically, never used to branch.
func extractWindow(scalar *U256, bitIndex int) uint32 {
	var w uint32
	for k := 0; k < 4; k++ {
		b := bitIndex + k
		bit := (scalar.w[b/32] >> uint(b%32)) & 1
		w |= bit << uint(k)
	}
	return w
}

// Multiply computes self <- [scalar]self, constant-time in both the
// point and the scalar, using a fixed 4-bit windowed method. The window
// lookup scans every table entry rather than indexing by the secret
// window value directly.
func (p *Point) Multiply(scalar *U256) {
	var table [16]Point
	table[0] = PointZero
	table[1] = *p
	for i := 2; i < 16; i++ {
		table[i] = table[i-1]
		table[i].Add(p)
	}

	acc := PointZero
	for i := 252; i >= 0; i -= 4 {
		w := extractWindow(scalar, i)
		sel := PointZero
		for j := 0; j < 16; j++ {
			enable := ctEqWord(uint32(j), w)
			sel.Replace(&table[j], enable)
		}
		acc.Add(&sel)
		if i > 0 {
			acc.Double()
			acc.Double()
			acc.Double()
			acc.Double()
		}
	}
	*p = acc
}

// Normalize converts self to affine form (Z = 1) when Z != 0. When Z = 0
// and self is not the identity encoding (a degenerate input outside the
// type's normal contract), it sets any nonzero coordinate to 1 purely so
// the operation is total; this branch has no cryptographic meaning and
// is a no-op on the identity itself.
func (p *Point) Normalize() {
	zNonZero := boolToBit(!p.Z.IsZero())

	zinv := p.Z
	zinv.Reciprocal()
	xNew := p.X
	xNew.Multiply(&zinv)
	yNew := p.Y
	yNew.Multiply(&zinv)

	p.X.Replace(&xNew, zNonZero)
	p.Y.Replace(&yNew, zNonZero)
	p.Z.Replace(&FpOne, zNonZero)

	zZero := 1 - zNonZero
	xNonZero := boolToBit(!p.X.IsZero())
	yNonZero := boolToBit(!p.Y.IsZero())
	p.X.Replace(&FpOne, zZero&xNonZero)
	p.Y.Replace(&FpOne, zZero&yNonZero)
}

// ToCompressedPoint writes the 33-byte SEC1 compressed encoding of p,
// which must already be normalized: out[0] = 0x02 | (Y & 1), out[1:33]
// is X big-endian.
func (p *Point) ToCompressedPoint(out *[33]byte) {
	if p.Y.IsOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	var xb [32]byte
	p.X.GetBigEndianBytes(&xb)
	copy(out[1:], xb[:])
}

// PrivateExponentToPublicPoint returns the normalized point [d]G. d must
// be in [1, n); violating that precondition is a contract violation and
// panics rather than returning a wrong answer.
func PrivateExponentToPublicPoint(d *U256) Point {
	if d.IsZero() || !d.Less(&CurveOrderN) {
		panic("secp256k1: private exponent must be in [1, n)")
	}
	p := Generator
	p.Multiply(d)
	p.Normalize()
	return p
}
