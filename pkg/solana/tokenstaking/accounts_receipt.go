package token_staking

import (
	"crypto/ed25519"
)

const maxRewardPools = 10

// Reference: https://github.com/mithraiclabs/spl-token-staking/blob/master/programs/spl-token-staking/src/state.rs
const StakeDepositReceiptSize = (8 + // discriminator
	32 + // owner
	32 + // payer
	32 + // stake_pool
	8 + // lockup_duration
	8 + // deposit_timestamp
	8 + // deposit_amount
	16 + // effective_stake
	16*maxRewardPools) // claimed_amounts

// Uint128 holds a little-endian u128 account field.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

type StakeDepositReceipt struct {
	// The owner of the staked tokens and the only signer able to withdraw them.
	Owner ed25519.PublicKey
	// The account that paid rent for the receipt.
	Payer ed25519.PublicKey
	// The pool the deposit belongs to.
	StakePool ed25519.PublicKey
	// Lockup duration in seconds.
	LockupDuration uint64
	// Unix timestamp of the deposit.
	DepositTimestamp int64
	// Amount deposited, in the token's smallest unit.
	DepositAmount uint64
	// Deposit amount scaled by the lockup weight.
	EffectiveStake Uint128
	// Rewards already claimed, one entry per reward pool.
	ClaimedAmounts [maxRewardPools]Uint128
}

func (r *StakeDepositReceipt) Unmarshal(data []byte) error {
	if len(data) != StakeDepositReceiptSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)

	getKey(data, &r.Owner, &offset)
	getKey(data, &r.Payer, &offset)
	getKey(data, &r.StakePool, &offset)
	getUint64(data, &r.LockupDuration, &offset)
	getInt64(data, &r.DepositTimestamp, &offset)
	getUint64(data, &r.DepositAmount, &offset)
	getUint128(data, &r.EffectiveStake, &offset)
	for i := 0; i < maxRewardPools; i++ {
		getUint128(data, &r.ClaimedAmounts[i], &offset)
	}

	return nil
}

// UnlockTimestamp returns the unix timestamp at which the deposit unlocks.
func (r *StakeDepositReceipt) UnlockTimestamp() int64 {
	return r.DepositTimestamp + int64(r.LockupDuration)
}

// IsLocked reports whether the deposit is still locked at the given time.
func (r *StakeDepositReceipt) IsLocked(now int64) bool {
	return now < r.UnlockTimestamp()
}
