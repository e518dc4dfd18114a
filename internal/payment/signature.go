package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// ErrInvalidSignature marks a webhook whose signature does not match the
// keyed hash. Such a notification must never reach business logic.
var ErrInvalidSignature = errors.New("invalid signature")

// Signature computes the gateway's notification signature:
// hex(SHA-512(orderID || statusCode || grossAmount || serverKey)),
// string concatenation with no separators.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks an inbound notification's signature in constant
// time. Returns ErrInvalidSignature on any mismatch.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) error {
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}
