package staking

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// Accepted lockup durations, in days.
const (
	Lockup1Month   uint64 = 30
	Lockup3Months  uint64 = 90
	Lockup6Months  uint64 = 180
	Lockup12Months uint64 = 365
)

const secondsPerDay = 24 * 60 * 60

// lockupSeconds converts an accepted lockup duration in days to seconds.
func lockupSeconds(days uint64) (uint64, bool) {
	switch days {
	case Lockup1Month, Lockup3Months, Lockup6Months, Lockup12Months:
		return days * secondsPerDay, true
	default:
		return 0, false
	}
}

// Config describes a single spl-token-staking pool deployment. The zero
// value is not usable; construct with MainnetConfig or fill in every field.
type Config struct {
	// Mint of the token being staked.
	Mint ed25519.PublicKey
	// Mint of the receipt token the pool issues against deposits.
	StakeMint ed25519.PublicKey
	// The stake pool state account.
	StakePool ed25519.PublicKey
	// The pool's deposit vault.
	Vault ed25519.PublicKey
	// Reward vaults, in the same order as StakePool.reward_pools on chain.
	RewardVaults []ed25519.PublicKey

	// Priority fee attached to stake transactions, in micro-lamports per
	// compute unit.
	ComputeUnitPrice uint64

	// Upper bound (exclusive) of the receipt nonce probe.
	NonceLimit uint32
}

// MainnetConfig returns the configuration for the BONK staking pool on
// mainnet-beta.
func MainnetConfig() Config {
	return Config{
		Mint:      mustDecode("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"),
		StakeMint: mustDecode("FYUjeMAFjbTzdMG91RSW5P4HT2sT7qzJQgDPiPG9ez9o"),
		StakePool: mustDecode("9AdEE8AAm1XgJrPEs4zkTPozr3o4U5iGbgvPwkNdLDJ3"),
		Vault:     mustDecode("4XHP9YQeeXPXHAjNXuKio1na1ypcxFSqFYBHtptQticd"),
		RewardVaults: []ed25519.PublicKey{
			mustDecode("2PPAJ8P5JgKZjkxq4h3kFSwLcuakFYr4fbV68jGghWxi"),
		},

		// Matches fees observed on successful mainnet stakes.
		ComputeUnitPrice: 5045,

		NonceLimit: 100,
	}
}

func mustDecode(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
