// Package config assembles server settings from flags, HOTSEAT_* environment
// variables, and an optional .env file, in that order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	// ListenAddr is the host:port the HTTP server binds.
	ListenAddr string
	// PublicURL is the externally reachable base embedded in QR codes.
	PublicURL string
	// BankDir overrides the embedded question bank with *.json files from a
	// directory. Empty means use the embedded bank.
	BankDir string

	// StepDelay paces synthetic host steps in hostless rooms.
	StepDelay time.Duration
	// AnswerCutoff bounds the fastest-finger answer window.
	AnswerCutoff time.Duration

	ShutdownTimeout time.Duration

	// Dev switches zap to its development config.
	Dev bool
}

// RegisterFlags declares every setting on the command's flag set. The flag
// names double as the viper keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("listen-addr", ":8080", "host:port to serve on")
	fs.String("public-url", "http://localhost:8080", "externally reachable base URL for QR codes")
	fs.String("bank-dir", "", "directory of question bank JSON files (empty: embedded bank)")
	fs.Duration("step-delay", 4*time.Second, "delay between synthetic host steps")
	fs.Duration("answer-cutoff", 20*time.Second, "fastest finger answer window")
	fs.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown deadline")
	fs.Bool("dev", false, "development logging")
}

// Load resolves the final configuration. A missing .env file is not an
// error; explicit flags beat environment values.
func Load(fs *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOTSEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	return Config{
		ListenAddr:      v.GetString("listen-addr"),
		PublicURL:       strings.TrimRight(v.GetString("public-url"), "/"),
		BankDir:         v.GetString("bank-dir"),
		StepDelay:       v.GetDuration("step-delay"),
		AnswerCutoff:    v.GetDuration("answer-cutoff"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
		Dev:             v.GetBool("dev"),
	}, nil
}
