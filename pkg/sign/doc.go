// Package sign provides chain-agnostic cryptographic signing primitives.
//
// It defines a small capability surface per curve family so the signing
// protocol layers above (EIP-191/EIP-712 hashing, transaction envelopes,
// Solana message layout) never touch curve internals directly:
//
//   - Signer: produce a signature for a digest or message
//   - PublicKey: public identity backing a signer
//   - Verifier / recovery helpers: attribute a signature to an identity
//
// Two implementations exist: secp256k1 (deterministic-nonce ECDSA with
// recoverable signatures, used by the EVM surface) and ed25519 (EdDSA over
// raw message bytes, used by the Solana surface). Private key material never
// leaves a Signer except through an explicit export on the owning account.
package sign
