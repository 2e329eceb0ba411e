package main

import (
	"crypto/ed25519"
	"flag"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/bonk-staking/go-client/pkg/solana"
)

// Requests a devnet SOL airdrop, for wallets used against a devnet
// deployment of the staking pool.
func main() {
	endpoint := flag.String("endpoint", string(solana.EnvironmentDev), "Solana RPC endpoint")
	keypairPath := flag.String("keypair", "", "Path to the Solana CLI keypair file")
	ownerArg := flag.String("owner", "", "Wallet address (alternative to -keypair)")
	lamports := flag.Uint64("lamports", 1_000_000_000, "Amount to request, in lamports")
	flag.Parse()

	log := logrus.StandardLogger().WithField("type", "cmd/airdrop")

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

	sig, err := sc.RequestAirdrop(owner, *lamports, solana.CommitmentConfirmed)
	if err != nil {
		log.WithError(err).Fatal("airdrop failed")
	}

	status, err := sc.GetSignatureStatus(sig, solana.CommitmentConfirmed)
	if err != nil {
		log.WithError(err).Fatal("airdrop not confirmed")
	}
	if status != nil && status.ErrorResult != nil {
		log.WithError(status.ErrorResult).Fatal("airdrop transaction failed")
	}

	balance, err := sc.GetBalance(owner)
	if err != nil {
		log.WithError(err).Fatal("failed to get balance")
	}

	log.WithFields(logrus.Fields{
		"owner":     base58.Encode(owner),
		"signature": sig.ToBase58(),
		"balance":   balance,
	}).Info("airdrop confirmed")
}
