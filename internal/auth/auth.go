// Package auth implements the non-Telegram auth path: a local password
// verifier derived with argon2id and kept in the durable local store. It is
// never synced remotely; Telegram users never touch it.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"

	"github.com/salespro-app/salespro/internal/common"
	"github.com/salespro-app/salespro/internal/logging"
	"github.com/salespro-app/salespro/internal/storage"
)

const saltSize = 16

type Service struct {
	store  *storage.Store
	logger logging.Logger
}

func New(store *storage.Store, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func makeVerifier(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}

// Register stores a verifier for the given username and password. An
// existing registration is overwritten.
func (s *Service) Register(ctx context.Context, username string, password []byte) error {
	salt, err := common.MakeRandHexString(saltSize)
	if err != nil {
		return err
	}

	key := deriveKey(password, []byte(salt))
	defer common.WipeByteArray(key)

	s.store.Set(ctx, storage.KeyAuthUsername, username)
	s.store.Set(ctx, storage.KeyAuthSalt, salt)
	s.store.Set(ctx, storage.KeyAuthVerifier, makeVerifier(key))
	s.logger.Info(ctx, "local account registered", "username", username)
	return nil
}

// Login verifies the password against the stored verifier. Returns
// common.ErrLocalDataNotAvailable when no registration exists and
// common.ErrUnauthorized on a mismatch.
func (s *Service) Login(ctx context.Context, username string, password []byte) error {
	savedUsername := storage.Get(ctx, s.store, storage.KeyAuthUsername, "")
	savedSalt := storage.Get(ctx, s.store, storage.KeyAuthSalt, "")
	savedVerifier := storage.Get(ctx, s.store, storage.KeyAuthVerifier, "")

	if savedUsername == "" || savedSalt == "" || savedVerifier == "" {
		return common.ErrLocalDataNotAvailable
	}
	if subtle.ConstantTimeCompare([]byte(savedUsername), []byte(username)) != 1 {
		return common.ErrUnauthorized
	}

	key := deriveKey(password, []byte(savedSalt))
	defer common.WipeByteArray(key)

	if subtle.ConstantTimeCompare([]byte(makeVerifier(key)), []byte(savedVerifier)) != 1 {
		return common.ErrUnauthorized
	}
	return nil
}
