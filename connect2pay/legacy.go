package connect2pay

// Legacy-compat boundary: the redirect delivery mode below predates the
// server callback and relies on AES in ECB mode with manual PKCS#5
// unpadding. It is kept only for merchants still receiving the status via
// shopper redirection; new integrations should use the server callback
// path exclusively.

import (
	"crypto/aes"
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeRedirectStatus decrypts and parses the "data" field posted to the
// merchant when the payment page redirects the shopper back. The
// decryption key is the merchant token of the transaction; both arguments
// are base64url encoded.
func DecodeRedirectStatus(encryptedData, merchantToken string) (*PaymentStatus, error) {
	key, err := decodeBase64URL(merchantToken)
	if err != nil {
		return nil, &DecodeError{Stage: "redirect key", Err: err}
	}

	data, err := decodeBase64URL(encryptedData)
	if err != nil {
		return nil, &DecodeError{Stage: "redirect data", Err: err}
	}

	plain, err := decryptECB(key, data)
	if err != nil {
		return nil, &DecodeError{Stage: "redirect data", Err: err}
	}

	plain, err = pkcs5Unpad(plain)
	if err != nil {
		return nil, &DecodeError{Stage: "redirect data", Err: err}
	}

	return decodeStatus(plain)
}

// decodeBase64URL tolerates both padded and unpadded input, as the
// payment page is not consistent about trailing '=' characters.
func decodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

// decryptECB decrypts data block by block with AES in ECB mode. ECB has no
// IV and no chaining; this matches the cipher the payment page uses for
// redirect payloads and must not be reused elsewhere.
func decryptECB(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	bs := block.BlockSize()
	if len(data) == 0 || len(data)%bs != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(data))
	}

	plain := make([]byte, len(data))
	for i := 0; i < len(data); i += bs {
		block.Decrypt(plain[i:i+bs], data[i:i+bs])
	}
	return plain, nil
}

// pkcs5Unpad strips and validates PKCS#5 padding: the pad byte must be in
// range and every padding byte must repeat it.
func pkcs5Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plaintext")
	}

	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, fmt.Errorf("invalid padding length %d", pad)
	}

	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}

	return data[:len(data)-pad], nil
}
