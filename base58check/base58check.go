// Package base58check implements the Base58Check envelope used for
// public-key-hash addresses, WIF private keys, and BIP-32 extended keys.
// The base-58 bignum bookkeeping itself is delegated to
// github.com/ModChain/base58; this package only adds the version byte,
// double-SHA-256 checksum, and the three concrete payload shapes.
package base58check

import (
	"bytes"
	"errors"

	"github.com/ModChain/base58"

	"github.com/nayuki/bitcoin-crypto-go/hashes"
)

// Alphabet is the Bitcoin base-58 alphabet: digits and letters with '0',
// 'O', 'I', and 'l' removed to avoid visual ambiguity.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const (
	// AddressVersionMainnet is the version byte for a mainnet P2PKH address.
	AddressVersionMainnet byte = 0x00
	// WIFVersionMainnet is the version byte for a mainnet WIF private key.
	WIFVersionMainnet byte = 0x80
	// CompressionMarker follows a WIF-encoded private key when the
	// corresponding public key should be serialized in compressed form.
	CompressionMarker byte = 0x01
)

// xprvHeader is the 4-byte BIP-32 extended-private-key header. Within the
// payload, the private scalar is preceded by a 0x00 format byte that
// follows the chain code.
var xprvHeader = [4]byte{0x04, 0x88, 0xAD, 0xE4}

// These sentinel errors name the ways a Base58Check string can be
// rejected. The decoders in this package do not return them: every
// decoder reports any rejection only as ok = false.
var (
	// ErrChecksumMismatch names the case where the trailing 4 checksum
	// bytes do not match double-SHA-256 of the payload.
	ErrChecksumMismatch = errors.New("base58check: checksum mismatch")
	// ErrBadLength names the case where a decoded payload has the wrong
	// length for the shape being parsed.
	ErrBadLength = errors.New("base58check: wrong payload length")
	// ErrBadVersion names the case where a decoded payload's version
	// byte is not the expected one.
	ErrBadVersion = errors.New("base58check: unexpected version byte")
	// ErrBadFormat names the case where a fixed-position marker byte (the
	// WIF compression flag, the BIP-32 private-key format byte) has an
	// unrecognized value.
	ErrBadFormat = errors.New("base58check: malformed payload")
)

// Encode prepends version to payload, appends the first 4 bytes of
// double-SHA-256 of that concatenation, and encodes the result in base 58.
func Encode(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+4)
	buf = append(buf, version)
	buf = append(buf, payload...)
	sum := hashes.SHA256Double(buf)
	buf = append(buf, sum[:4]...)
	return base58.Bitcoin.Encode(buf)
}

// Decode reverses Encode: it base-58 decodes s, verifies the checksum,
// and returns the version byte and payload separately. Like every other
// decoder in this package, it returns false rather than an error for any
// malformed input: wrong length, bad alphabet, or a checksum mismatch.
func Decode(s string) (version byte, payload []byte, ok bool) {
	raw, err := base58.Bitcoin.Decode(s)
	if err != nil || len(raw) < 5 {
		return 0, nil, false
	}
	body := raw[:len(raw)-4]
	checksum := raw[len(raw)-4:]
	expected := hashes.SHA256Double(body)
	if !bytes.Equal(checksum, expected[:4]) {
		return 0, nil, false
	}
	return body[0], body[1:], true
}

// EncodeAddress produces a Base58Check P2PKH address from a 20-byte
// public-key hash (RIPEMD-160(SHA-256(pubkey))) and a version byte
// (AddressVersionMainnet for mainnet).
func EncodeAddress(version byte, pubkeyHash [20]byte) string {
	return Encode(version, pubkeyHash[:])
}

// DecodeAddress parses a P2PKH address, returning its version byte and
// 20-byte public-key hash.
func DecodeAddress(s string) (version byte, pubkeyHash [20]byte, ok bool) {
	v, payload, valid := Decode(s)
	if !valid || len(payload) != 20 {
		return 0, [20]byte{}, false
	}
	copy(pubkeyHash[:], payload)
	return v, pubkeyHash, true
}

// EncodeWIF produces the Wallet Import Format encoding of a 32-byte
// private scalar. When compressed is true a trailing CompressionMarker
// byte is included so the decoder can recover the flag.
func EncodeWIF(version byte, privKey [32]byte, compressed bool) string {
	payload := make([]byte, 0, 33)
	payload = append(payload, privKey[:]...)
	if compressed {
		payload = append(payload, CompressionMarker)
	}
	return Encode(version, payload)
}

// DecodeWIF parses a WIF-encoded private key, reporting whether it
// carries the compression marker.
func DecodeWIF(s string) (version byte, privKey [32]byte, compressed bool, ok bool) {
	v, payload, valid := Decode(s)
	if !valid {
		return 0, [32]byte{}, false, false
	}
	switch len(payload) {
	case 32:
		copy(privKey[:], payload)
		return v, privKey, false, true
	case 33:
		if payload[32] != CompressionMarker {
			return 0, [32]byte{}, false, false
		}
		copy(privKey[:], payload[:32])
		return v, privKey, true, true
	default:
		return 0, [32]byte{}, false, false
	}
}

// ExtendedKeyPayload holds the fields carried inside a BIP-32 extended
// private key, everything after the 4-byte header.
type ExtendedKeyPayload struct {
	Depth             uint8
	ParentFingerprint [4]byte
	ChildIndex        uint32
	ChainCode         [32]byte
	PrivateKey        [32]byte
}

// EncodeExtendedPrivateKey serializes an extended private key to its
// 111-character xprv string.
func EncodeExtendedPrivateKey(k ExtendedKeyPayload) string {
	// The 4-byte header does not fit the single-version-byte Encode
	// helper, so xprv is built and checksummed directly instead.
	buf := make([]byte, 0, 4+1+4+4+32+1+32+4)
	buf = append(buf, xprvHeader[:]...)
	buf = append(buf, k.Depth)
	buf = append(buf, k.ParentFingerprint[:]...)
	var idx [4]byte
	putUint32BE(idx[:], k.ChildIndex)
	buf = append(buf, idx[:]...)
	buf = append(buf, k.ChainCode[:]...)
	buf = append(buf, 0x00)
	buf = append(buf, k.PrivateKey[:]...)
	sum := hashes.SHA256Double(buf)
	buf = append(buf, sum[:4]...)
	return base58.Bitcoin.Encode(buf)
}

// DecodeExtendedPrivateKey parses an xprv string, verifying the header,
// checksum, and private-key format byte.
func DecodeExtendedPrivateKey(s string) (ExtendedKeyPayload, bool) {
	raw, err := base58.Bitcoin.Decode(s)
	if err != nil || len(raw) != 82 {
		return ExtendedKeyPayload{}, false
	}
	body := raw[:78]
	checksum := raw[78:]
	expected := hashes.SHA256Double(body)
	if !bytes.Equal(checksum, expected[:4]) {
		return ExtendedKeyPayload{}, false
	}
	if !bytes.Equal(body[0:4], xprvHeader[:]) {
		return ExtendedKeyPayload{}, false
	}
	if body[45] != 0x00 {
		return ExtendedKeyPayload{}, false
	}

	var out ExtendedKeyPayload
	out.Depth = body[4]
	copy(out.ParentFingerprint[:], body[5:9])
	out.ChildIndex = uint32BE(body[9:13])
	copy(out.ChainCode[:], body[13:45])
	copy(out.PrivateKey[:], body[46:78])
	return out, true
}

func putUint32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func uint32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
