package server

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/universalwallet/wallet-bridge/internal/api"
	"golang.org/x/term"
)

const unlockAttempts = 3

// initializeWallet creates or unlocks the wallet at startup when running
// interactively. Without a terminal the wallet stays locked and the unlock
// flow runs through the popup surface instead.
func initializeWallet(ctx context.Context, s *api.Server) error {
	state := s.Wallet.State(ctx)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Info().Bool("hasWallet", state.HasWallet).Msg("No terminal attached, skipping interactive wallet setup")
		return nil
	}

	if !state.HasWallet {
		return createWalletInteractive(ctx, s)
	}

	if state.IsLocked {
		return unlockWalletInteractive(ctx, s)
	}

	return nil
}

func createWalletInteractive(ctx context.Context, s *api.Server) error {
	fmt.Println("No wallet found, creating a new one.")

	password, err := promptPassword("Choose a wallet password: ")
	if err != nil {
		return err
	}

	confirm, err := promptPassword("Repeat the wallet password: ")
	if err != nil {
		return err
	}

	if password != confirm {
		return errors.New("passwords do not match")
	}

	mnemonic, err := s.Wallet.Create(ctx, password)
	if err != nil {
		return errors.Wrap(err, "failed to create wallet")
	}

	// shown exactly once, never logged
	fmt.Println("\nYour recovery phrase, write it down and store it safely:")
	fmt.Printf("\n    %s\n\n", mnemonic)

	return nil
}

func unlockWalletInteractive(ctx context.Context, s *api.Server) error {
	for attempt := 1; attempt <= unlockAttempts; attempt++ {
		password, err := promptPassword("Wallet password: ")
		if err != nil {
			return err
		}

		unlocked, err := s.Wallet.Unlock(ctx, password)
		if err != nil {
			return errors.Wrap(err, "failed to unlock wallet")
		}

		if unlocked {
			log.Info().Msg("Wallet unlocked")
			return nil
		}

		fmt.Println("Wrong password.")
	}

	return errors.Errorf("wallet still locked after %d attempts", unlockAttempts)
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	return strings.TrimSpace(string(raw)), nil
}
