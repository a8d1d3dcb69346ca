// Package hashes wraps the hash primitives consumed by the secp256k1 core
// and by base58check/bip32: SHA-256, SHA-512, RIPEMD-160, and Keccak-256,
// plus HMAC over the first two. None of this package is constant-time —
// every input and output here is public.
package hashes

import (
	"crypto/hmac"
	"crypto/sha512"
	"hash"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// newSHA256 returns a SIMD-accelerated SHA-256 hasher when the platform
// supports it, falling back to the pure-Go implementation otherwise. It
// also backs HMACSHA256, which callers pass to the core's
// SignWithHMACNonce for nonce derivation.
func newSHA256() hash.Hash {
	return sha256simd.New()
}

// SHA256 returns FIPS 180-4 SHA-256(data).
func SHA256(data []byte) [32]byte {
	h := newSHA256()
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SHA256Double returns SHA-256(SHA-256(data)), the digest Bitcoin uses for
// Base58Check checksums and transaction/block IDs.
func SHA256Double(data []byte) [32]byte {
	first := SHA256(data)
	return SHA256(first[:])
}

// SHA512 returns FIPS 180-4 SHA-512(data).
func SHA512(data []byte) [64]byte {
	h := sha512.New()
	h.Write(data)
	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// RIPEMD160 returns ISO/IEC 10118-3 RIPEMD-160(data).
func RIPEMD160(data []byte) [20]byte {
	h := ripemd160.New()
	h.Write(data)
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Keccak256 returns Keccak-f[1600] with rate 1088 and the original Keccak
// padding byte 0x01 (not the NIST SHA-3 padding byte 0x06 that
// golang.org/x/crypto/sha3.Sum256 would use) — the variant Ethereum-style
// address and signature schemes rely on.
func Keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 returns RIPEMD-160(SHA-256(data)), the digest used for
// public-key-hash addresses.
func Hash160(data []byte) [20]byte {
	sha := SHA256(data)
	return RIPEMD160(sha[:])
}

// HMACSHA256 computes HMAC-SHA-256(key, msg). Its signature matches the
// function type the secp256k1 core's SignWithHMACNonce expects, so it can
// be passed there directly.
func HMACSHA256(key, msg []byte) [32]byte {
	mac := hmac.New(newSHA256, key)
	mac.Write(msg)
	var out [32]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// HMACSHA512 computes HMAC-SHA-512(key, msg), used by BIP-32 child-key
// derivation to produce IL ‖ IR from the parent chain code and message.
func HMACSHA512(key, msg []byte) [64]byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(msg)
	var out [64]byte
	copy(out[:], mac.Sum(nil))
	return out
}
