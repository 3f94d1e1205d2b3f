// Package decode inspects signed transactions without touching any key
// material, for both supported chain families.
package decode

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/keymint/go-signer/internal/evm"
	"github/keymint/go-signer/internal/solana"
	"github/keymint/go-signer/internal/util/command"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("decode",
		newEVM(),
		newSolana(),
	)
}

func newEVM() *cobra.Command {
	return &cobra.Command{
		Use:   "evm <raw-tx-hex>",
		Short: "Decodes a raw hex-encoded EVM transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			tx, err := evm.DecodeRaw(args[0])
			if err != nil {
				log.Error().Err(err).Msg("Failed to decode transaction")
				os.Exit(1)
			}

			out := map[string]any{
				"type":  tx.Type.String(),
				"nonce": tx.Nonce,
				"gas":   tx.Gas,
			}
			if tx.ChainID != nil {
				out["chain_id"] = tx.ChainID.String()
			}
			if tx.To != nil {
				out["to"] = tx.To.Hex()
			}
			if tx.Value != nil {
				out["value"] = tx.Value.String()
			}
			if tx.GasPrice != nil {
				out["gas_price"] = tx.GasPrice.String()
			}
			if tx.GasTipCap != nil {
				out["max_priority_fee_per_gas"] = tx.GasTipCap.String()
			}
			if tx.GasFeeCap != nil {
				out["max_fee_per_gas"] = tx.GasFeeCap.String()
			}
			if len(tx.Data) > 0 {
				out["data"] = fmt.Sprintf("0x%x", tx.Data)
			}

			if sender, err := evm.RecoverSender(args[0]); err == nil {
				out["from"] = sender.Hex()
			}

			printJSON(out)
		},
	}
}

func newSolana() *cobra.Command {
	return &cobra.Command{
		Use:   "solana <raw-tx-base58>",
		Short: "Decodes a base58-encoded Solana transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			tx, err := solana.DeserializeTransaction(args[0])
			if err != nil {
				log.Error().Err(err).Msg("Failed to decode transaction")
				os.Exit(1)
			}

			accounts := make([]string, 0, len(tx.Message.AccountKeys))
			for _, key := range tx.Message.AccountKeys {
				accounts = append(accounts, key.String())
			}

			out := map[string]any{
				"recent_blockhash": tx.Message.RecentBlockhash.String(),
				"account_keys":     accounts,
				"instructions":     len(tx.Message.Instructions),
				"signatures":       len(tx.Signatures),
			}
			if err := tx.VerifySignatures(); err == nil {
				out["signatures_valid"] = true
			} else {
				out["signatures_valid"] = false
			}

			printJSON(out)
		},
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal output")
		os.Exit(1)
	}
	fmt.Println(string(out))
}
