package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"authgate/internal/token"
	"github.com/joho/godotenv"
)

func main() {
	envFile := flag.String("env", ".env", "env file to write VALID_TOKEN into")
	saveAuthFile := flag.Bool("save", false, "also write the token to .auth_token (plain text, mode 0600)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tok, err := token.NewGenerator().Generate()
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		os.Exit(1)
	}

	if err := writeEnvToken(*envFile, tok); err != nil {
		logger.Error("failed to update env file", slog.String("file", *envFile), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("token set in env file", slog.String("file", *envFile))

	if *saveAuthFile {
		if err := os.WriteFile(".auth_token", []byte(tok), 0o600); err != nil {
			logger.Error("failed to write .auth_token", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Warn("token saved to .auth_token in plain text; anyone with access to this file can use it")
	}

	logger.Info("you can now start the gateway with this token")
	fmt.Println(tok)
}

// writeEnvToken replaces VALID_TOKEN in the env file, preserving every
// other entry
func writeEnvToken(path, tok string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		env = map[string]string{}
	}
	env["VALID_TOKEN"] = tok
	return godotenv.Write(env, path)
}
