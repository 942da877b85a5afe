package contractshim

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// verifyAdminSignature checks a DER-encoded secp256k1 signature over
// SHA-256(payload) against the admin's compressed public key. This
// stands in for the signature check a real chain runtime performs on
// every admin-authorized call before the contract's own logic runs. A
// signature that is not valid DER simply does not verify (false, nil);
// only a malformed admin public key is reported as an error.
func verifyAdminSignature(adminPubKey, signature, payload []byte) (bool, error) {
	pub, err := secp256k1.ParsePubKey(adminPubKey)
	if err != nil {
		return false, fmt.Errorf("parse admin public key: %w", err)
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false, nil
	}
	digest := sha256.Sum256(payload)
	return sig.Verify(digest[:], pub), nil
}

// SignAdminPayload signs SHA-256(payload) with priv, for use by tests
// and local tooling that need to produce a valid admin call.
func SignAdminPayload(priv *secp256k1.PrivateKey, payload []byte) []byte {
	digest := sha256.Sum256(payload)
	sig := ecdsa.Sign(priv, digest[:])
	return sig.Serialize()
}
