// Package ringct implements the cryptographic primitives of a
// RingCT-style confidential transaction scheme over the ristretto255
// group.
//
// It provides Pedersen commitments, MLSAG and CLSAG linkable ring
// signatures over commitment-carrying enotes, borromean and
// aggregated Bulletproofs+ style rangeproofs, ECDH payment secrets
// with view tags, CryptoNote stealth addresses, subaddresses with
// constant-time lookup tables, and a batch verifier that amortizes
// verification across many proofs and signatures.
//
// Serialization is fixed width. All decoders reject non-canonical
// scalar and point encodings.
package ringct
