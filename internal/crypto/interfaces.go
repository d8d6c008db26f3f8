package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Sealer protects the secrets kept in the local credential cache.
//
// Sealed values are self-describing strings, so a cache written without a key
// can still be read after one is configured; the next save seals it.
type Sealer interface {
	// Seal encrypts plaintext. The empty string is returned unchanged.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. Values that were never sealed are returned as is.
	Open(sealed string) (string, error)
}
