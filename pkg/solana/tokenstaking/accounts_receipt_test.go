package token_staking

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakeDepositReceipt_Unmarshal(t *testing.T) {
	keys := generateKeys(t, 3)

	data := make([]byte, StakeDepositReceiptSize)
	offset := 8 // discriminator
	copy(data[offset:], keys[0])
	offset += 32
	copy(data[offset:], keys[1])
	offset += 32
	copy(data[offset:], keys[2])
	offset += 32
	binary.LittleEndian.PutUint64(data[offset:], 15_552_000)
	offset += 8
	binary.LittleEndian.PutUint64(data[offset:], uint64(1_700_000_000))
	offset += 8
	binary.LittleEndian.PutUint64(data[offset:], 1_000_000)
	offset += 8
	binary.LittleEndian.PutUint64(data[offset:], 2_000_000) // effective stake lo
	offset += 16
	binary.LittleEndian.PutUint64(data[offset:], 123) // claimed_amounts[0] lo

	var receipt StakeDepositReceipt
	require.NoError(t, receipt.Unmarshal(data))

	assert.EqualValues(t, keys[0], receipt.Owner)
	assert.EqualValues(t, keys[1], receipt.Payer)
	assert.EqualValues(t, keys[2], receipt.StakePool)
	assert.EqualValues(t, 15_552_000, receipt.LockupDuration)
	assert.EqualValues(t, 1_700_000_000, receipt.DepositTimestamp)
	assert.EqualValues(t, 1_000_000, receipt.DepositAmount)
	assert.Equal(t, Uint128{Lo: 2_000_000}, receipt.EffectiveStake)
	assert.Equal(t, Uint128{Lo: 123}, receipt.ClaimedAmounts[0])
	assert.Equal(t, Uint128{}, receipt.ClaimedAmounts[1])

	assert.EqualValues(t, 1_700_000_000+15_552_000, receipt.UnlockTimestamp())
	assert.True(t, receipt.IsLocked(1_700_000_000))
	assert.False(t, receipt.IsLocked(receipt.UnlockTimestamp()))
}

func TestStakeDepositReceipt_UnmarshalInvalid(t *testing.T) {
	var receipt StakeDepositReceipt
	assert.Equal(t, ErrInvalidAccountData, receipt.Unmarshal(nil))
	assert.Equal(t, ErrInvalidAccountData, receipt.Unmarshal(make([]byte, StakeDepositReceiptSize-1)))
}
