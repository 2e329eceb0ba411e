package main

import (
	"crypto/ed25519"
	"flag"
	"time"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/bonk-staking/go-client/pkg/solana"
	"github.com/bonk-staking/go-client/pkg/staking"
)

func main() {
	endpoint := flag.String("endpoint", string(solana.EnvironmentProd), "Solana RPC endpoint")
	keypairPath := flag.String("keypair", "", "Path to the Solana CLI keypair file")
	ownerArg := flag.String("owner", "", "Wallet address (alternative to -keypair)")
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/balances")

	var owner ed25519.PublicKey
	switch {
	case *ownerArg != "":
		decoded, err := base58.Decode(*ownerArg)
		if err != nil {
			log.WithError(err).Fatal("invalid owner address")
		}
		owner = decoded
	case *keypairPath != "":
		user, err := solana.LoadKeypair(*keypairPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load keypair")
		}
		owner = user.Public().(ed25519.PublicKey)
	default:
		log.Fatal("either -owner or -keypair is required")
	}

	sc := solana.New(*endpoint)
	config := staking.MainnetConfig()
	client := staking.NewClient(sc, config)

	lamports, err := sc.GetBalance(owner)
	if err != nil {
		log.WithError(err).Fatal("failed to get balance")
	}

	tokenBalance, err := client.TokenBalance(owner)
	if err != nil {
		log.WithError(err).Fatal("failed to get token balance")
	}

	stakeBalance, err := client.StakeTokenBalance(owner)
	if err != nil {
		log.WithError(err).Fatal("failed to get stake token balance")
	}

	log.WithFields(logrus.Fields{
		"owner":         base58.Encode(owner),
		"lamports":      lamports,
		"token_balance": tokenBalance,
		"stake_balance": stakeBalance,
	}).Info("balances")

	for _, mint := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"token", config.Mint},
		{"stake", config.StakeMint},
	} {
		accounts, err := sc.GetTokenAccountsByOwner(owner, mint.key)
		if err != nil {
			log.WithError(err).Fatal("failed to get token accounts")
		}
		for _, account := range accounts {
			log.WithFields(logrus.Fields{
				"mint":    mint.name,
				"account": base58.Encode(account),
			}).Info("token account")
		}
	}

	stakes, err := client.Stakes(owner)
	if err != nil {
		log.WithError(err).Fatal("failed to get stakes")
	}

	now := time.Now().Unix()
	for _, stake := range stakes {
		log.WithFields(logrus.Fields{
			"receipt":   base58.Encode(stake.ReceiptAddress),
			"nonce":     stake.Nonce,
			"amount":    stake.Amount,
			"unlock_at": time.Unix(stake.UnlockAt, 0).UTC().Format(time.RFC3339),
			"locked":    stake.Locked(now),
		}).Info("stake")
	}
	if len(stakes) == 0 {
		log.Info("no stakes found")
	}
}
