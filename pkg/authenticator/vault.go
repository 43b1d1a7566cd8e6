package authenticator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpkit/pkg/totp"
)

// DefaultSlot is the storage key the serialized account document lives under.
const DefaultSlot = "otpkit:accounts"

// VaultOption configures vault construction.
type VaultOption func(*Vault)

// WithSlot overrides the storage key used for the account document.
func WithSlot(slot string) VaultOption {
	return func(v *Vault) {
		if slot != "" {
			v.slot = slot
		}
	}
}

// WithEncryptionKey enables AES-256-GCM encryption of the persisted document.
// The key must be 32 bytes (see totp.GetEncryptionKey).
func WithEncryptionKey(key []byte) VaultOption {
	return func(v *Vault) {
		if len(key) > 0 {
			v.encryptionKey = key
		}
	}
}

// WithVaultLogger sets the logger used for persistence diagnostics.
func WithVaultLogger(log *slog.Logger) VaultOption {
	return func(v *Vault) {
		if log != nil {
			v.log = log
		}
	}
}

// Vault is the ordered collection of enrolled accounts. It is loaded from the
// injected Storage once at construction and written back after every
// successful mutation. Persistence is best-effort: load and save failures are
// logged and swallowed so a broken backend degrades to an in-memory vault
// instead of taking the authenticator down.
type Vault struct {
	mu       sync.RWMutex
	accounts []Account

	storage       Storage
	slot          string
	encryptionKey []byte
	log           *slog.Logger

	onChange func(count int)
}

// NewVault builds a vault backed by storage and performs the one-time initial
// load. A missing slot starts an empty vault; a document that fails to decrypt
// or deserialize is discarded with a warning.
func NewVault(ctx context.Context, storage Storage, opts ...VaultOption) (*Vault, error) {
	if storage == nil {
		return nil, ErrNilStorage
	}

	v := &Vault{
		storage: storage,
		slot:    DefaultSlot,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.load(ctx)
	return v, nil
}

// OnChange registers a single observer invoked with the account count after
// every successful mutation. The scheduler uses it to drive its idle/active
// transitions. The callback runs outside the vault lock.
func (v *Vault) OnChange(fn func(count int)) {
	v.mu.Lock()
	v.onChange = fn
	v.mu.Unlock()
}

// Add enrolls a manually entered account. The secret is upper-cased and
// stripped of whitespace before validation; an empty name or empty/malformed
// secret is rejected without mutating the vault.
func (v *Vault) Add(ctx context.Context, params AccountParams) (Account, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return Account{}, ErrMissingName
	}

	secret := normalizeSecret(params.Secret)
	if secret == "" {
		return Account{}, ErrMissingSecret
	}
	if !totp.ValidateSecretKeyRegex.MatchString(secret) {
		return Account{}, ErrInvalidSecret
	}

	return v.append(ctx, Account{
		Name:   name,
		Issuer: strings.TrimSpace(params.Issuer),
		Secret: secret,
		Digits: params.Digits,
		Period: params.Period,
	}), nil
}

// Import enrolls an account from an otpauth URI. Only totp URIs with a
// non-empty secret are accepted; any parse failure is a validation error and
// leaves the vault unchanged.
func (v *Vault) Import(ctx context.Context, uri string) (Account, error) {
	params, err := totp.ParseURI(uri)
	if err != nil {
		return Account{}, errors.Join(ErrInvalidURI, err)
	}

	secret := normalizeSecret(params.Secret)
	if secret == "" {
		return Account{}, ErrMissingSecret
	}

	return v.append(ctx, Account{
		Name:   params.AccountName,
		Issuer: params.Issuer,
		Secret: secret,
		Digits: params.Digits,
		Period: params.Period,
	}), nil
}

// Delete removes the account with the given id. Deleting an unknown id is an
// idempotent no-op: nothing is persisted and no error is returned.
func (v *Vault) Delete(ctx context.Context, id string) error {
	v.mu.Lock()
	idx := slices.IndexFunc(v.accounts, func(a Account) bool { return a.ID == id })
	if idx < 0 {
		v.mu.Unlock()
		return nil
	}
	v.accounts = slices.Delete(v.accounts, idx, idx+1)
	count, notify := len(v.accounts), v.onChange
	v.mu.Unlock()

	v.persist(ctx)
	if notify != nil {
		notify(count)
	}
	return nil
}

// Get returns the account with the given id.
func (v *Vault) Get(id string) (Account, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, a := range v.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// Accounts returns an insertion-ordered snapshot of all accounts.
func (v *Vault) Accounts() []Account {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.accounts)
}

// Len reports the number of enrolled accounts.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.accounts)
}

// append assigns a fresh id, applies descriptor defaults, stores the account
// at the end of the collection and persists the full document.
func (v *Vault) append(ctx context.Context, account Account) Account {
	account.ID = uuid.NewString()
	if account.Digits <= 0 {
		account.Digits = totp.DefaultDigits
	}
	if account.Period <= 0 {
		account.Period = totp.DefaultPeriod
	}

	v.mu.Lock()
	v.accounts = append(v.accounts, account)
	count, notify := len(v.accounts), v.onChange
	v.mu.Unlock()

	v.persist(ctx)
	if notify != nil {
		notify(count)
	}
	return account
}

func (v *Vault) load(ctx context.Context) {
	doc, err := v.storage.Get(ctx, v.slot)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			v.log.WarnContext(ctx, "vault load failed, starting empty", "slot", v.slot, "error", err)
		}
		return
	}

	if len(v.encryptionKey) > 0 {
		doc, err = totp.DecryptSecret(doc, v.encryptionKey)
		if err != nil {
			v.log.WarnContext(ctx, "vault decrypt failed, starting empty", "slot", v.slot, "error", err)
			return
		}
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(doc), &accounts); err != nil {
		v.log.WarnContext(ctx, "vault deserialize failed, starting empty", "slot", v.slot, "error", err)
		return
	}

	v.mu.Lock()
	v.accounts = accounts
	v.mu.Unlock()
}

func (v *Vault) persist(ctx context.Context) {
	v.mu.RLock()
	doc, err := json.Marshal(v.accounts)
	v.mu.RUnlock()
	if err != nil {
		v.log.WarnContext(ctx, "vault serialize failed", "slot", v.slot, "error", err)
		return
	}

	payload := string(doc)
	if len(v.encryptionKey) > 0 {
		payload, err = totp.EncryptSecret(payload, v.encryptionKey)
		if err != nil {
			v.log.WarnContext(ctx, "vault encrypt failed", "slot", v.slot, "error", err)
			return
		}
	}

	if err := v.storage.Set(ctx, v.slot, payload); err != nil {
		v.log.WarnContext(ctx, "vault persist failed", "slot", v.slot, "error", err)
	}
}

// normalizeSecret upper-cases the secret and drops all whitespace.
func normalizeSecret(secret string) string {
	return strings.ToUpper(strings.Join(strings.Fields(secret), ""))
}
