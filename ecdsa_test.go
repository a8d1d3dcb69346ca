package secp256k1

import (
	"math/rand"
	"testing"

	"github.com/nayuki/bitcoin-crypto-go/hashes"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(30))
	for i := 0; i < 20; i++ {
		d := randScalarModOrder(r)
		if d.IsZero() {
			continue
		}
		k := randScalarModOrder(r)
		if k.IsZero() {
			continue
		}

		var m [32]byte
		r.Read(m[:])

		sig, s, ok := Sign(&d, &m, &k)
		if !ok {
			continue
		}

		Q := PrivateExponentToPublicPoint(&d)
		if !Verify(&Q, &m, &sig, &s) {
			t.Fatalf("verify failed for a signature sign() reported valid")
		}
	}
}

func TestSignLowS(t *testing.T) {
	r := rand.New(rand.NewSource(31))
	half := CurveOrderN
	half.ShiftRight1(1)

	for i := 0; i < 30; i++ {
		d := randScalarModOrder(r)
		k := randScalarModOrder(r)
		if d.IsZero() || k.IsZero() {
			continue
		}
		var m [32]byte
		r.Read(m[:])

		_, s, ok := Sign(&d, &m, &k)
		if !ok {
			continue
		}
		if half.Less(&s) {
			t.Fatalf("signature s exceeds (n-1)/2: %v", s.w)
		}
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	d := U256One
	k := mustU256Small(7)
	var m [32]byte
	m[0] = 0xAB

	r, s, ok := Sign(&d, &m, &k)
	if !ok {
		t.Fatal("sign unexpectedly failed")
	}
	Q := PrivateExponentToPublicPoint(&d)
	if !Verify(&Q, &m, &r, &s) {
		t.Fatal("verify failed on an untampered signature")
	}

	m[0] ^= 0xFF
	if Verify(&Q, &m, &r, &s) {
		t.Fatal("verify accepted a signature over a different message")
	}
}

// TestDeterministicNonceSignThenVerify checks that signing with d = 1,
// m = sha256(""), and a nonce derived via HMAC-SHA-256(d, m) succeeds
// with 0 < r,s < n, s <= (n-1)/2, and verify(G, m, r, s) = true.
func TestDeterministicNonceSignThenVerify(t *testing.T) {
	d := U256One
	m := hashes.SHA256(nil)

	r, s, ok := SignWithHMACNonce(&d, &m, hashes.HMACSHA256)
	if !ok {
		t.Fatal("SignWithHMACNonce unexpectedly returned false")
	}
	if r.IsZero() || !r.Less(&CurveOrderN) {
		t.Fatalf("r out of range: %v", r.w)
	}
	if s.IsZero() || !s.Less(&CurveOrderN) {
		t.Fatalf("s out of range: %v", s.w)
	}
	half := CurveOrderN
	half.ShiftRight1(1)
	if half.Less(&s) {
		t.Fatalf("s exceeds (n-1)/2: %v", s.w)
	}

	if !Verify(&Generator, &m, &r, &s) {
		t.Fatal("verify(G, m, r, s) should succeed")
	}
}

func TestDeterministicNonceIsPureFunctionOfInputs(t *testing.T) {
	d := mustU256Small(42)
	m := hashes.SHA256([]byte("repeat me"))

	r1, s1, ok1 := SignWithHMACNonce(&d, &m, hashes.HMACSHA256)
	r2, s2, ok2 := SignWithHMACNonce(&d, &m, hashes.HMACSHA256)
	if !ok1 || !ok2 {
		t.Fatal("SignWithHMACNonce unexpectedly returned false")
	}
	if !r1.Equal(&r2) || !s1.Equal(&s2) {
		t.Fatal("signWithHmacNonce is not deterministic in (d, m)")
	}
}

func TestVerifyRejectsOutOfRangeSignature(t *testing.T) {
	Q := Generator
	var m [32]byte
	zero := U256Zero
	one := U256One
	if Verify(&Q, &m, &zero, &one) {
		t.Fatal("verify should reject r = 0")
	}
	if Verify(&Q, &m, &one, &zero) {
		t.Fatal("verify should reject s = 0")
	}
	if Verify(&Q, &m, &CurveOrderN, &one) {
		t.Fatal("verify should reject r >= n")
	}
}

func TestVerifyRejectsNonNormalizedOrIdentityPoint(t *testing.T) {
	var m [32]byte
	one := U256One
	notNormalized := Generator
	notNormalized.Z.Double()
	if Verify(&notNormalized, &m, &one, &one) {
		t.Fatal("verify should reject a non-normalized point")
	}
	if Verify(&PointZero, &m, &one, &one) {
		t.Fatal("verify should reject the identity point")
	}
}
