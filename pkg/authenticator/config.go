package authenticator

// Config selects and parameterizes the storage backend for the vault.
type Config struct {
	Backend  string `env:"OTPKIT_STORAGE" envDefault:"file"`               // One of "file", "redis", "mongo", "memory"
	VaultDir string `env:"OTPKIT_VAULT_DIR" envDefault:".otpkit"`          // Directory used by the file backend
	Slot     string `env:"OTPKIT_VAULT_SLOT" envDefault:"otpkit:accounts"` // Storage key holding the account document
	Database string `env:"OTPKIT_MONGO_DATABASE" envDefault:"otpkit"`      // Database name used by the mongo backend
}
