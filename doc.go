/*
Package secp256k1 implements the constant-time arithmetic core of a
Bitcoin key-and-signature library: a fixed-width 256-bit unsigned
integer (U256), the secp256k1 prime field (Fp), the secp256k1 group in
projective coordinates (Point), and ECDSA signing and verification over
that group.

The package intentionally has no dependency on any hash, encoding, or
key-derivation logic. Those live in the sibling hashes, base58check, and
bip32 packages and are wired into ECDSA and BIP-32 derivation through
narrow, already-hashed byte interfaces.

Every operation documented as constant-time executes in a fixed number
of steps determined only by numWords (8 32-bit words) and the 256-bit
bit length of the curve order, never by the values of its secret
operands. ECDSA.Verify and the hashes/base58check/bip32 packages operate
on public data and make no such promise.
*/
package secp256k1
