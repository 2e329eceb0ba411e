package main

import (
	"flag"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/bonk-staking/go-client/pkg/solana"
	token_staking "github.com/bonk-staking/go-client/pkg/solana/tokenstaking"
	"github.com/bonk-staking/go-client/pkg/staking"
)

// Derives stake deposit receipt addresses for a nonce range, optionally
// checking which ones exist on chain.
func main() {
	endpoint := flag.String("endpoint", string(solana.EnvironmentProd), "Solana RPC endpoint")
	ownerArg := flag.String("owner", "", "Wallet address (required)")
	from := flag.Uint("from", 0, "First nonce to derive")
	to := flag.Uint("to", 10, "Last nonce to derive (exclusive)")
	check := flag.Bool("check", false, "Check on-chain existence of each receipt")
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/receipt")

	if *ownerArg == "" {
		log.Fatal("-owner is required")
	}
	owner, err := base58.Decode(*ownerArg)
	if err != nil {
		log.WithError(err).Fatal("invalid owner address")
	}

	config := staking.MainnetConfig()

	var sc solana.Client
	if *check {
		sc = solana.New(*endpoint)

		rent, err := sc.GetMinimumBalanceForRentExemption(token_staking.StakeDepositReceiptSize)
		if err != nil {
			log.WithError(err).Fatal("failed to get rent exemption")
		}
		log.WithFields(logrus.Fields{
			"size":     token_staking.StakeDepositReceiptSize,
			"lamports": rent,
		}).Info("receipt rent exemption")
	}

	for nonce := uint32(*from); nonce < uint32(*to); nonce++ {
		receipt, bump, err := token_staking.GetStakeDepositReceiptAddress(&token_staking.GetStakeDepositReceiptAddressArgs{
			Owner:     owner,
			StakePool: config.StakePool,
			Nonce:     nonce,
		})
		if err != nil {
			log.WithError(err).Fatal("failed to derive receipt")
		}

		entry := log.WithFields(logrus.Fields{
			"nonce":   nonce,
			"receipt": base58.Encode(receipt),
			"bump":    bump,
		})

		if sc != nil {
			_, err := sc.GetAccountInfo(receipt, solana.CommitmentConfirmed)
			switch err {
			case nil:
				entry = entry.WithField("exists", true)
			case solana.ErrNoAccountInfo:
				entry = entry.WithField("exists", false)
			default:
				log.WithError(err).Fatal("failed to get account info")
			}
		}

		entry.Info("receipt")
	}
}
