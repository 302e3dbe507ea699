package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// Codec signs the session id carried by the cookie so a client cannot
// fabricate one. The cookie value is "<id>.<base64(hmac-sha256(id))>".
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) Encode(sessionID string) string {
	return sessionID + "." + c.sign(sessionID)
}

// Decode returns the session id, or ErrInvalidCookie when the value is
// malformed or the signature does not match.
func (c *Codec) Decode(value string) (string, error) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", ErrInvalidCookie
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(id))) {
		return "", ErrInvalidCookie
	}
	return id, nil
}

func (c *Codec) sign(sessionID string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
