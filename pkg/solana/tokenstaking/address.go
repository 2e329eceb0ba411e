package token_staking

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/bonk-staking/go-client/pkg/solana"
)

// The receipt seed suffix is camelCase in the on-chain program.
var stakeDepositReceiptSuffix = []byte("stakeDepositReceipt")

type GetStakeDepositReceiptAddressArgs struct {
	Owner     ed25519.PublicKey
	StakePool ed25519.PublicKey
	Nonce     uint32
}

// GetStakeDepositReceiptAddress derives the stake deposit receipt address for
// an owner, pool, and nonce. Receipts for the same owner and pool are
// distinguished only by the nonce, so the derivation is deterministic.
//
// Seeds: owner || stake_pool || nonce (u32 little-endian) || "stakeDepositReceipt"
func GetStakeDepositReceiptAddress(args *GetStakeDepositReceiptAddressArgs) (ed25519.PublicKey, uint8, error) {
	nonceBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(nonceBytes, args.Nonce)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.Owner,
		args.StakePool,
		nonceBytes,
		stakeDepositReceiptSuffix,
	)
}
