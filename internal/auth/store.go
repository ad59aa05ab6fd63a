package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"CryptoRadar/internal/model"
)

var (
	// ErrDuplicateAccount is returned when registering an email that already exists.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidAccount is returned when email or password is empty.
	ErrInvalidAccount = errors.New("email and password are required")
)

// Digest returns the hex-encoded sha256 digest of a password.
func Digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Store verifies credentials against a flat JSON account file. The built-in
// admin identity is seeded as an ordinary record in the same file, so every
// login goes through one path.
type Store struct {
	mu       sync.Mutex
	filePath string
}

// NewStore opens the account store, seeding the admin record when absent.
func NewStore(filePath, adminEmail, adminPassword string) (*Store, error) {
	s := &Store{filePath: filePath}

	accounts := s.load()
	for _, a := range accounts {
		if strings.EqualFold(a.Email, adminEmail) {
			return s, nil
		}
	}
	accounts = append(accounts, model.Account{
		Email:          adminEmail,
		PasswordDigest: Digest(adminPassword),
	})
	if err := s.save(accounts); err != nil {
		return nil, err
	}
	log.Printf("[INFO] seeded admin account %s", adminEmail)
	return s, nil
}

func (s *Store) load() []model.Account {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read accounts: %v", err)
		}
		return []model.Account{}
	}
	var accounts []model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		log.Printf("[WARN] parse accounts, treating store as empty: %v", err)
		return []model.Account{}
	}
	return accounts
}

func (s *Store) save(accounts []model.Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Verify reports whether the email/password pair matches a stored account.
func (s *Store) Verify(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	digest := Digest(password)
	for _, a := range s.load() {
		if strings.EqualFold(a.Email, email) {
			return subtle.ConstantTimeCompare([]byte(a.PasswordDigest), []byte(digest)) == 1
		}
	}
	return false
}

// Register appends a new account. Duplicate emails are rejected with no
// partial write.
func (s *Store) Register(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrInvalidAccount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.load()
	for _, a := range accounts {
		if strings.EqualFold(a.Email, email) {
			return ErrDuplicateAccount
		}
	}
	accounts = append(accounts, model.Account{
		Email:          email,
		PasswordDigest: Digest(password),
	})
	return s.save(accounts)
}
