package secp256k1

// multiplyModOrder computes x <- (x*y) mod n via Russian-peasant
// double-and-add, reducing modulo the curve order at every step so no
// intermediate value ever exceeds it. x and y must be distinct objects
// (y's bits are read throughout while x is overwritten) and x must
// already be in [0, n).
func multiplyModOrder(x, y *U256) {
	if x == y {
		panic("secp256k1: multiplyModOrder operands must not alias")
	}
	if !x.Less(&CurveOrderN) {
		panic("secp256k1: multiplyModOrder requires x < n")
	}

	addend := *x
	*x = U256Zero

	for i := 255; i >= 0; i-- {
		carry := x.ShiftLeft1()
		enable := carry | boolToBit(!x.Less(&CurveOrderN))
		x.Subtract(&CurveOrderN, enable)

		bit := (y.w[i/32] >> uint(i%32)) & 1
		carry2 := x.Add(&addend, bit)
		enable2 := carry2 | boolToBit(!x.Less(&CurveOrderN))
		x.Subtract(&CurveOrderN, enable2)
	}
}

// reduceModOrderOnce brings a raw 256-bit value into [0, n) with a single
// conditional subtraction, valid because n is within 2^128 of 2^256.
func reduceModOrderOnce(v *U256) {
	enable := boolToBit(!v.Less(&CurveOrderN))
	v.Subtract(&CurveOrderN, enable)
}

// Sign computes an ECDSA signature over message hash m under private
// scalar d using the supplied nonce k. It returns ok = false — a
// rejection the caller must handle by retrying with a different nonce,
// never a panic — when k is outside its domain or when the
// (astronomically unlikely) r = 0 or s = 0 case occurs. On every
// successful path the signature's s is normalized to the lower half of
// [1, n) per the low-S rule.
func Sign(d *U256, m *[32]byte, k *U256) (r, s U256, ok bool) {
	if k.IsZero() || !k.Less(&CurveOrderN) {
		return U256{}, U256{}, false
	}

	R := PrivateExponentToPublicPoint(k)
	r = R.X.U256()
	reduceModOrderOnce(&r)
	if r.IsZero() {
		return U256{}, U256{}, false
	}

	s = r
	multiplyModOrder(&s, d)

	z, err := NewU256FromBigEndianBytes(m[:])
	if err != nil {
		panic(err)
	}
	reduceModOrderOnce(&z)

	carry := s.Add(&z, 1)
	enable := carry | boolToBit(!s.Less(&CurveOrderN))
	s.Subtract(&CurveOrderN, enable)

	kInv := *k
	kInv.Reciprocal(&CurveOrderN)
	multiplyModOrder(&s, &kInv)

	if s.IsZero() {
		return U256{}, U256{}, false
	}

	nMinusS := CurveOrderN
	nMinusS.Subtract(&s, 1)
	useAlt := boolToBit(nMinusS.Less(&s))
	s.Replace(&nMinusS, useAlt)

	return r, s, true
}

// SignWithHMACNonce derives a nonce as HMAC-SHA-256(key = d big-endian,
// msg = m) and signs with it. This is deliberately not full RFC 6979: it
// is a single HMAC evaluation with no per-failure iteration, so a
// rejected nonce simply propagates as a false return rather than being
// retried with a re-derived one. Callers requiring RFC 6979 interop must
// layer that iteration on top of this function themselves.
func SignWithHMACNonce(d *U256, m *[32]byte, hmacSHA256 func(key, msg []byte) [32]byte) (r, s U256, ok bool) {
	var dBytes [32]byte
	d.GetBigEndianBytes(&dBytes)
	mac := hmacSHA256(dBytes[:], m[:])
	k, err := NewU256FromBigEndianBytes(mac[:])
	if err != nil {
		panic(err)
	}
	return Sign(d, m, &k)
}

// Verify checks signature (r, s) against message hash m and public point
// Q. Unlike the rest of this package, Verify operates entirely on public
// data and makes no constant-time promise. It returns false on any rule
// violation and never panics.
func Verify(Q *Point, m *[32]byte, r, s *U256) bool {
	if !Q.Z.Equal(&FpOne) {
		return false
	}
	if Q.IsZero() {
		return false
	}
	if !Q.IsOnCurve() {
		return false
	}

	nq := *Q
	nq.Multiply(&CurveOrderN)
	nq.Normalize()
	if !nq.IsZero() {
		return false
	}

	if r.IsZero() || !r.Less(&CurveOrderN) {
		return false
	}
	if s.IsZero() || !s.Less(&CurveOrderN) {
		return false
	}

	w := *s
	w.Reciprocal(&CurveOrderN)

	z, err := NewU256FromBigEndianBytes(m[:])
	if err != nil {
		panic(err)
	}
	reduceModOrderOnce(&z)

	u1 := z
	multiplyModOrder(&u1, &w)
	u2 := *r
	multiplyModOrder(&u2, &w)

	p1 := Generator
	p1.Multiply(&u1)
	p2 := *Q
	p2.Multiply(&u2)
	p1.Add(&p2)
	p1.Normalize()
	if p1.IsZero() {
		return false
	}

	rx := p1.X.U256()
	reduceModOrderOnce(&rx)

	return r.Equal(&rx)
}

// VerifyStrictLowS behaves like Verify but additionally rejects any
// signature whose s exceeds (n-1)/2, matching BIP-62's malleability
// policy for callers that want to enforce it on the verify side too.
func VerifyStrictLowS(Q *Point, m *[32]byte, r, s *U256) bool {
	if !Verify(Q, m, r, s) {
		return false
	}
	half := CurveOrderN
	half.ShiftRight1(1)
	return !half.Less(s)
}
