package main

import (
	"crypto/ed25519"
	"flag"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/bonk-staking/go-client/pkg/solana"
	"github.com/bonk-staking/go-client/pkg/staking"
)

func main() {
	endpoint := flag.String("endpoint", string(solana.EnvironmentProd), "Solana RPC endpoint")
	keypairPath := flag.String("keypair", "", "Path to the Solana CLI keypair file (required)")
	amount := flag.Uint64("amount", 0, "Amount to stake, in the token's smallest unit (required)")
	days := flag.Uint64("days", 180, "Lockup duration in days (30, 90, 180, or 365)")
	nonce := flag.Int("nonce", -1, "Receipt nonce; -1 selects the first free nonce")
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/stake")

	if *keypairPath == "" {
		log.Fatal("-keypair is required")
	}
	if *amount == 0 {
		log.Fatal("-amount is required")
	}

	user, err := solana.LoadKeypair(*keypairPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load keypair")
	}
	owner := user.Public().(ed25519.PublicKey)

	client := staking.NewClient(solana.New(*endpoint), staking.MainnetConfig())

	balance, err := client.TokenBalance(owner)
	if err != nil {
		log.WithError(err).Fatal("failed to get token balance")
	}
	log.WithFields(logrus.Fields{
		"owner":   base58.Encode(owner),
		"balance": balance,
	}).Info("staking")

	var selected *uint32
	if *nonce >= 0 {
		n := uint32(*nonce)
		selected = &n
	}

	sig, err := client.Stake(user, *amount, *days, selected)
	if err != nil {
		log.WithError(err).Fatal("stake failed")
	}

	log.WithField("signature", sig.ToBase58()).Info("stake submitted")
}
