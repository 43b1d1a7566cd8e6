// Package authenticator manages the lifecycle of enrolled OTP accounts: an
// ordered, persisted account collection (Vault) and a refresh loop
// (Scheduler) that keeps a current code per account.
//
// # Vault
//
// The vault is an append-only ordered collection keyed by an opaque unique id
// (UUID). It is loaded once from an injected Storage at construction and
// serialized back after every successful mutation. Persistence is best-effort
// by design: a missing or unreadable document starts an empty vault and a
// failed write is logged and swallowed, so storage problems never take the
// authenticator down.
//
//	storage := authenticator.NewFileStorage(".otpkit")
//	vault, err := authenticator.NewVault(ctx, storage)
//	account, err := vault.Add(ctx, authenticator.AccountParams{
//	    Name:   "alice@example.com",
//	    Issuer: "Acme",
//	    Secret: "JBSWY3DPEHPK3PXP",
//	})
//	account, err = vault.Import(ctx, "otpauth://totp/Acme:alice@example.com?secret=...")
//
// Validation happens at this boundary: Add rejects an empty name and an empty
// or malformed secret, Import rejects anything but a totp URI with a secret.
// Rejected input never mutates the vault. Code generation downstream is
// deliberately permissive instead (see pkg/totp).
//
// Storage implementations are provided for memory, the local filesystem,
// Redis and MongoDB; anything satisfying the two-method Storage interface
// works. WithEncryptionKey encrypts the persisted document with AES-256-GCM.
//
// # Scheduler
//
// The scheduler owns a single one-second tick. It is idle while the vault is
// empty and active while at least one account exists; the vault's change
// notification drives the transitions. Every tick updates the countdown to
// the next 30-second boundary, but codes regenerate only when the boundary is
// actually crossed, plus once immediately on activation. An account whose
// secret yields no key bytes gets the fixed placeholder "------" without
// disturbing the rest of the batch.
//
//	sched := authenticator.NewScheduler(vault,
//	    authenticator.WithOnRefresh(func(snap authenticator.Snapshot) {
//	        // render snap.Codes and snap.TimeLeft
//	    }))
//	sched.Start()
//	defer sched.Stop()
//
// Stop is deterministic: once it returns, no tick fires and no callback runs.
//
// The refresh cycle is a single global 30-second unit even though each
// account carries its own period. An account with period=60 is recomputed at
// every 30-second boundary (a harmless redundant HMAC) and the shared
// countdown reflects the 30-second cycle, mirroring the common
// single-global-ticker convention of authenticator UIs.
package authenticator
