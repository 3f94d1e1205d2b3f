// Package keygen provides offline key material helpers: mnemonic
// generation, deterministic account derivation and random keypairs.
// Nothing here touches the network.
package keygen

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/account/mnemonic"
	"github/keymint/go-signer/internal/util/command"
)

const (
	wordsFlag      string = "words"
	chainFlag      string = "chain"
	indexFlag      string = "index"
	mnemonicFlag   string = "mnemonic"
	passphraseFlag string = "passphrase"
	revealFlag     string = "reveal"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keygen",
		newMnemonic(),
		newDerive(),
		newRandom(),
	)
}

func newMnemonic() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generates a fresh BIP-39 mnemonic phrase",
		Run: func(cmd *cobra.Command, _ []string) {
			words, err := cmd.Flags().GetInt(wordsFlag)
			if err != nil {
				log.Error().Err(err).Msg("Failed to read words flag")
				os.Exit(1)
			}

			phrase, err := mnemonic.NewService().Generate(words)
			if err != nil {
				log.Error().Err(err).Int("words", words).Msg("Failed to generate mnemonic")
				os.Exit(1)
			}

			fmt.Println(phrase)
		},
	}
	cmd.Flags().Int(wordsFlag, mnemonic.DefaultWordCount, "mnemonic length (12, 15, 18, 21 or 24)")

	return cmd
}

func newDerive() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derives an account from a mnemonic phrase",
		Run: func(cmd *cobra.Command, _ []string) {
			phrase := mustString(cmd, mnemonicFlag)
			passphrase := mustString(cmd, passphraseFlag)
			chain := mustString(cmd, chainFlag)
			index := mustUint32(cmd, indexFlag)
			reveal := mustBool(cmd, revealFlag)

			if phrase == "" {
				phrase = os.Getenv("SIGNER_SIGNING_MNEMONIC")
			}

			svc := account.NewService(mnemonic.NewService())

			acct, err := svc.FromMnemonic(phrase, passphrase, index, account.Chain(chain))
			if err != nil {
				log.Error().Err(err).Str("chain", chain).Uint32("index", index).Msg("Failed to derive account")
				os.Exit(1)
			}
			defer acct.Wipe()

			printAccount(acct, reveal)
		},
	}
	cmd.Flags().String(mnemonicFlag, "", "mnemonic phrase (falls back to SIGNER_SIGNING_MNEMONIC)")
	cmd.Flags().String(passphraseFlag, "", "optional BIP-39 passphrase")
	addAccountFlags(cmd)

	return cmd
}

func newRandom() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generates a random standalone keypair",
		Run: func(cmd *cobra.Command, _ []string) {
			chain := mustString(cmd, chainFlag)
			reveal := mustBool(cmd, revealFlag)

			if account.Chain(chain) != account.ChainEVM && account.Chain(chain) != account.ChainSolana {
				log.Error().Str("chain", chain).Msg("Unsupported chain")
				os.Exit(1)
			}

			acct := account.NewService(mnemonic.NewService()).Random(account.Chain(chain))
			defer acct.Wipe()

			printAccount(acct, reveal)
		},
	}
	cmd.Flags().String(chainFlag, string(account.ChainEVM), "chain family (evm or solana)")
	cmd.Flags().Bool(revealFlag, false, "also print the private key")

	return cmd
}

func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().String(chainFlag, string(account.ChainEVM), "chain family (evm or solana)")
	cmd.Flags().Uint32(indexFlag, 0, "derivation index")
	cmd.Flags().Bool(revealFlag, false, "also print the private key")
}

func printAccount(acct *account.Account, reveal bool) {
	fmt.Printf("chain:   %s\n", acct.Chain())
	fmt.Printf("address: %s\n", acct.Identity())
	if reveal {
		fmt.Printf("private: %s\n", acct.ExportPrivateKey())
	}
}

func mustString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		log.Error().Err(err).Str("flag", name).Msg("Failed to read flag")
		os.Exit(1)
	}
	return v
}

func mustUint32(cmd *cobra.Command, name string) uint32 {
	v, err := cmd.Flags().GetUint32(name)
	if err != nil {
		log.Error().Err(err).Str("flag", name).Msg("Failed to read flag")
		os.Exit(1)
	}
	return v
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		log.Error().Err(err).Str("flag", name).Msg("Failed to read flag")
		os.Exit(1)
	}
	return v
}
