package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/otpkit/pkg/authenticator"
	"github.com/dmitrymomot/otpkit/pkg/config"
	"github.com/dmitrymomot/otpkit/pkg/logger"
	"github.com/dmitrymomot/otpkit/pkg/mongo"
	"github.com/dmitrymomot/otpkit/pkg/qrcode"
	"github.com/dmitrymomot/otpkit/pkg/redis"
	"github.com/dmitrymomot/otpkit/pkg/totp"
)

const usage = `Usage: otpkit <command> [flags]

Commands:
  add      enroll an account from a manually entered secret
  import   enroll an account from an otpauth:// URI
  list     list enrolled accounts
  delete   remove an account by id
  codes    print the current code for every account
  watch    continuously print codes and the countdown
  qr       write a provisioning QR code PNG for an account
  keygen   generate a TOTP_ENCRYPTION_KEY value
`

func main() {
	log := logger.New(logger.WithCLI())
	logger.SetAsDefault(log)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	if command == "keygen" {
		key, err := totp.GenerateEncodedEncryptionKey()
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil
	}

	vault, err := openVault(ctx)
	if err != nil {
		return err
	}

	switch command {
	case "add":
		return cmdAdd(ctx, vault, args)
	case "import":
		return cmdImport(ctx, vault, args)
	case "list":
		return cmdList(vault)
	case "delete":
		return cmdDelete(ctx, vault, args)
	case "codes":
		return cmdCodes(vault)
	case "watch":
		return cmdWatch(ctx, vault)
	case "qr":
		return cmdQR(vault, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// openVault assembles the storage backend and vault from environment config.
func openVault(ctx context.Context) (*authenticator.Vault, error) {
	var cfg authenticator.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []authenticator.VaultOption{authenticator.WithSlot(cfg.Slot)}

	totpCfg, err := totp.LoadConfig()
	if err != nil {
		return nil, err
	}
	if totpCfg.EncryptionKey != "" {
		key, err := totp.GetEncryptionKey(totpCfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, authenticator.WithEncryptionKey(key))
	}

	return authenticator.NewVault(ctx, storage, opts...)
}

func newStorage(ctx context.Context, cfg authenticator.Config) (authenticator.Storage, error) {
	switch cfg.Backend {
	case "memory":
		return authenticator.NewMemoryStorage(), nil
	case "file":
		return authenticator.NewFileStorage(cfg.VaultDir), nil
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return authenticator.NewRedisStorage(client), nil
	case "mongo":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, mongoCfg, cfg.Database)
		if err != nil {
			return nil, err
		}
		return authenticator.NewMongoStorage(db.Collection("vault")), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func cmdAdd(ctx context.Context, vault *authenticator.Vault, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "account label, e.g. alice@example.com (required)")
	issuer := fs.String("issuer", "", "service name shown next to the account")
	secret := fs.String("secret", "", "Base32-encoded shared secret (required)")
	digits := fs.Int("digits", totp.DefaultDigits, "code length")
	period := fs.Int("period", totp.DefaultPeriod, "code validity in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := vault.Add(ctx, authenticator.AccountParams{
		Name:   *name,
		Issuer: *issuer,
		Secret: *secret,
		Digits: *digits,
		Period: *period,
	})
	if err != nil {
		return err
	}
	fmt.Println("added", account.ID)
	return nil
}

func cmdImport(ctx context.Context, vault *authenticator.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: otpkit import <otpauth-uri>")
	}
	account, err := vault.Import(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println("imported", account.ID)
	return nil
}

func cmdList(vault *authenticator.Vault) error {
	for _, a := range vault.Accounts() {
		label := a.Name
		if a.Issuer != "" {
			label = a.Issuer + ":" + a.Name
		}
		fmt.Printf("%s\t%s\t(%dd/%ds)\n", a.ID, label, a.Digits, a.Period)
	}
	return nil
}

func cmdDelete(ctx context.Context, vault *authenticator.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: otpkit delete <id>")
	}
	return vault.Delete(ctx, args[0])
}

func cmdCodes(vault *authenticator.Vault) error {
	if vault.Len() == 0 {
		fmt.Println("no accounts enrolled")
		return nil
	}

	sched := authenticator.NewScheduler(vault)
	sched.Start()
	defer sched.Stop()

	printSnapshot(vault, sched.Snapshot())
	return nil
}

func cmdWatch(ctx context.Context, vault *authenticator.Vault) error {
	sched := authenticator.NewScheduler(vault,
		authenticator.WithOnRefresh(func(snap authenticator.Snapshot) {
			printSnapshot(vault, snap)
		}))
	sched.Start()
	defer sched.Stop()

	if vault.Len() == 0 {
		fmt.Println("no accounts enrolled; waiting")
	}

	<-ctx.Done()
	return nil
}

func cmdQR(vault *authenticator.Vault, args []string) error {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	id := fs.String("id", "", "account id (required)")
	out := fs.String("out", "qr.png", "output PNG path")
	size := fs.Int("size", 256, "image size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	account, err := vault.Get(*id)
	if err != nil {
		return err
	}

	png, err := qrcode.GenerateProvisioningQR(totp.TOTPParams{
		Secret:      account.Secret,
		AccountName: account.Name,
		Issuer:      account.Issuer,
		Digits:      account.Digits,
		Period:      account.Period,
	}, *size)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, png, 0o600); err != nil {
		return err
	}
	fmt.Println("wrote", *out)
	return nil
}

func printSnapshot(vault *authenticator.Vault, snap authenticator.Snapshot) {
	fmt.Printf("-- %2ds left --\n", snap.TimeLeft)
	for _, a := range vault.Accounts() {
		code, ok := snap.Codes[a.ID]
		if !ok {
			continue
		}
		label := a.Name
		if a.Issuer != "" {
			label = a.Issuer + ":" + a.Name
		}
		fmt.Printf("%s\t%s\n", code, label)
	}
}
