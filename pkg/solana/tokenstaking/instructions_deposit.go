package token_staking

import (
	"bytes"
	"crypto/ed25519"

	"github.com/bonk-staking/go-client/pkg/solana"
)

// Anchor discriminator for the deposit instruction.
var depositInstructionDiscriminator = []byte{
	242, 35, 198, 137, 82, 225, 242, 182,
}

const (
	DepositInstructionArgsSize = (4 + // nonce
		8 + // amount
		8) // lockup_duration

	DepositInstructionSize = (8 + // discriminator
		DepositInstructionArgsSize) // args
)

type DepositInstructionArgs struct {
	Nonce          uint32
	Amount         uint64
	LockupDuration uint64
}

type DepositInstructionAccounts struct {
	Payer               ed25519.PublicKey
	Owner               ed25519.PublicKey
	From                ed25519.PublicKey
	Vault               ed25519.PublicKey
	StakeMint           ed25519.PublicKey
	Destination         ed25519.PublicKey
	StakePool           ed25519.PublicKey
	StakeDepositReceipt ed25519.PublicKey

	// RewardVaults carries one vault per reward pool, in the same order as
	// StakePool.reward_pools on chain.
	RewardVaults []ed25519.PublicKey
}

// NewDepositInstruction builds the deposit instruction that transfers tokens
// into the pool vault, mints stake tokens to the destination, and records the
// position in a new stake deposit receipt.
func NewDepositInstruction(
	accounts *DepositInstructionAccounts,
	args *DepositInstructionArgs,
) solana.Instruction {
	var offset int
	data := make([]byte, DepositInstructionSize)

	putDiscriminator(data, depositInstructionDiscriminator, &offset)
	putUint32(data, args.Nonce, &offset)
	putUint64(data, args.Amount, &offset)
	putUint64(data, args.LockupDuration, &offset)

	metas := []solana.AccountMeta{
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewAccountMeta(accounts.Owner, true),
		solana.NewAccountMeta(accounts.From, false),
		solana.NewAccountMeta(accounts.Vault, false),
		solana.NewAccountMeta(accounts.StakeMint, false),
		solana.NewAccountMeta(accounts.Destination, false),
		solana.NewAccountMeta(accounts.StakePool, false),
		solana.NewAccountMeta(accounts.StakeDepositReceipt, false),
		solana.NewReadonlyAccountMeta(SPL_TOKEN_PROGRAM_ID, false),
		solana.NewReadonlyAccountMeta(SYSVAR_RENT_PUBKEY, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	}
	for _, vault := range accounts.RewardVaults {
		metas = append(metas, solana.NewAccountMeta(vault, false))
	}

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		metas...,
	)
}

// DepositInstructionFromBinary parses the arguments out of serialized deposit
// instruction data.
func DepositInstructionFromBinary(data []byte) (*DepositInstructionArgs, error) {
	if len(data) != DepositInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	var offset int
	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, depositInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args DepositInstructionArgs
	getUint32(data, &args.Nonce, &offset)
	getUint64(data, &args.Amount, &offset)
	getUint64(data, &args.LockupDuration, &offset)

	return &args, nil
}
