package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
)

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

var errSealedTooShort = errors.New("sealed session payload too short")

// SessionData is the identity bound to a server-side login session.
type SessionData struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	RoleID      int    `json:"roleId"`
	AccessToken string `json:"accessToken"`
}

// SessionStore keeps login sessions in Redis, sealed with AES-256-GCM.
// The session id is bound as associated data so a payload copied under another id fails to open.
type SessionStore struct {
	aead  cipher.AEAD
	nonce io.Reader
}

var (
	setSessionValue    = Set
	getSessionValue    = Get
	delSessionValue    = Del
	marshalSessionJSON = json.Marshal
)

// NewSessionStore builds a store from a 64 character hex key.
func NewSessionStore(encryptionKeyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &SessionStore{aead: aead, nonce: rand.Reader}, nil
}

func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, data *SessionData, expiration time.Duration) error {
	payload, err := marshalSessionJSON(data)
	if err != nil {
		return err
	}
	sealed, err := s.seal(sessionID, payload)
	if err != nil {
		return err
	}
	return setSessionValue(ctx, sessionKeyPrefix+sessionID, sealed, expiration)
}

// GetSession returns ErrSessionNotFound for unknown ids and for payloads that fail to open.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	sealed, err := getSessionValue(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	payload, err := s.open(sessionID, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	var data SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return delSessionValue(ctx, sessionKeyPrefix+sessionID)
}

func (s *SessionStore) seal(sessionID string, plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(s.nonce, nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, plaintext, []byte(sessionID))
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *SessionStore) open(sessionID, sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, err
	}
	n := s.aead.NonceSize()
	if len(raw) < n+s.aead.Overhead() {
		return nil, errSealedTooShort
	}
	return s.aead.Open(nil, raw[:n], raw[n:], []byte(sessionID))
}
