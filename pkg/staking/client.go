package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bonk-staking/go-client/pkg/solana"
	compute_budget "github.com/bonk-staking/go-client/pkg/solana/computebudget"
	"github.com/bonk-staking/go-client/pkg/solana/token"
	token_staking "github.com/bonk-staking/go-client/pkg/solana/tokenstaking"
)

// StakeInfo describes one stake deposit receipt owned by a wallet.
type StakeInfo struct {
	// The stake deposit receipt address.
	ReceiptAddress ed25519.PublicKey
	// The nonce the receipt was derived with.
	Nonce uint32
	// Amount staked, in the token's smallest unit.
	Amount uint64
	// Lockup duration in seconds.
	LockupDuration uint64
	// Unix timestamp of the deposit.
	CreatedAt int64
	// Unix timestamp at which the deposit unlocks.
	UnlockAt int64
}

// Locked reports whether the stake is still locked at the given time.
func (s StakeInfo) Locked(now int64) bool {
	return now < s.UnlockAt
}

// RemainingLockup returns the remaining lockup in seconds, or zero if the
// stake has unlocked.
func (s StakeInfo) RemainingLockup(now int64) int64 {
	if remaining := s.UnlockAt - now; remaining > 0 {
		return remaining
	}
	return 0
}

// Client stakes tokens into a single spl-token-staking pool.
type Client struct {
	log    *logrus.Entry
	sc     solana.Client
	config Config
}

// NewClient returns a staking client for the pool described by config.
func NewClient(sc solana.Client, config Config) *Client {
	return &Client{
		log:    logrus.StandardLogger().WithField("type", "staking/client"),
		sc:     sc,
		config: config,
	}
}

// Stake deposits amount into the pool for the given lockup, paying with the
// owner's associated token account. If nonce is nil the first free receipt
// nonce is selected. The transaction is signed by user, submitted, and
// polled until it reaches confirmed commitment; an on-chain rejection is
// returned as the node's transaction error.
//
// Validation happens before any network call, so a zero amount or an
// unsupported duration never costs an RPC round trip.
func (c *Client) Stake(user ed25519.PrivateKey, amount, lockupDays uint64, nonce *uint32) (solana.Signature, error) {
	owner := user.Public().(ed25519.PublicKey)

	if amount == 0 {
		return solana.Signature{}, ErrInvalidAmount
	}

	lockup, ok := lockupSeconds(lockupDays)
	if !ok {
		return solana.Signature{}, ErrUnsupportedLockupDuration
	}

	var stakeNonce uint32
	if nonce != nil {
		stakeNonce = *nonce
	} else {
		var err error
		stakeNonce, err = c.FindAvailableNonce(owner)
		if err != nil {
			return solana.Signature{}, err
		}
	}

	balance, err := c.TokenBalance(owner)
	if err != nil {
		return solana.Signature{}, err
	}
	if balance < amount {
		return solana.Signature{}, &InsufficientBalanceError{
			Required:  amount,
			Available: balance,
		}
	}

	from, err := token.GetAssociatedAccount(owner, c.config.Mint)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to derive token account")
	}

	createDestination, destination, err := token.CreateAssociatedTokenAccountIdempotent(owner, owner, c.config.StakeMint)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to derive stake token account")
	}

	receipt, _, err := token_staking.GetStakeDepositReceiptAddress(&token_staking.GetStakeDepositReceiptAddressArgs{
		Owner:     owner,
		StakePool: c.config.StakePool,
		Nonce:     stakeNonce,
	})
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to derive stake deposit receipt")
	}

	deposit := token_staking.NewDepositInstruction(
		&token_staking.DepositInstructionAccounts{
			Payer:               owner,
			Owner:               owner,
			From:                from,
			Vault:               c.config.Vault,
			StakeMint:           c.config.StakeMint,
			Destination:         destination,
			StakePool:           c.config.StakePool,
			StakeDepositReceipt: receipt,
			RewardVaults:        c.config.RewardVaults,
		},
		&token_staking.DepositInstructionArgs{
			Nonce:          stakeNonce,
			Amount:         amount,
			LockupDuration: lockup,
		},
	)

	txn := solana.NewTransaction(
		owner,
		compute_budget.SetComputeUnitPrice(c.config.ComputeUnitPrice),
		createDestination,
		deposit,
	)

	bh, err := c.sc.GetLatestBlockhash()
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to get latest blockhash")
	}
	txn.SetBlockhash(bh)

	if err := txn.Sign(user); err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := c.sc.SubmitTransaction(txn, solana.CommitmentConfirmed)
	if err != nil {
		return sig, errors.Wrap(err, "failed to submit transaction")
	}

	// Acceptance by the node is not execution; poll until the deposit
	// reaches confirmed commitment or fails.
	status, err := c.sc.GetSignatureStatus(sig, solana.CommitmentConfirmed)
	if err != nil {
		return sig, errors.Wrap(err, "failed to confirm transaction")
	}
	if status != nil && status.ErrorResult != nil {
		return sig, errors.Wrap(status.ErrorResult, "transaction failed")
	}

	c.log.WithFields(logrus.Fields{
		"amount":    amount,
		"lockup":    lockup,
		"nonce":     stakeNonce,
		"signature": sig.ToBase58(),
	}).Debug("submitted stake deposit")

	return sig, nil
}

// TokenBalance returns the owner's balance of the staked token. A missing
// associated token account reads as zero.
func (c *Client) TokenBalance(owner ed25519.PublicKey) (uint64, error) {
	return c.ataBalance(owner, c.config.Mint)
}

// StakeTokenBalance returns the owner's balance of the pool's receipt token.
// A missing associated token account reads as zero.
func (c *Client) StakeTokenBalance(owner ed25519.PublicKey) (uint64, error) {
	return c.ataBalance(owner, c.config.StakeMint)
}

func (c *Client) ataBalance(owner, mint ed25519.PublicKey) (uint64, error) {
	account, err := token.GetAssociatedAccount(owner, mint)
	if err != nil {
		return 0, errors.Wrap(err, "failed to derive token account")
	}

	balance, _, err := c.sc.GetTokenAccountBalance(account)
	if err == solana.ErrNoBalance {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrap(err, "failed to get token account balance")
	}

	return balance, nil
}

// FindAvailableNonce returns the first nonce in [0, NonceLimit) whose stake
// deposit receipt does not exist yet.
func (c *Client) FindAvailableNonce(owner ed25519.PublicKey) (uint32, error) {
	for nonce := uint32(0); nonce < c.config.NonceLimit; nonce++ {
		receipt, _, err := token_staking.GetStakeDepositReceiptAddress(&token_staking.GetStakeDepositReceiptAddressArgs{
			Owner:     owner,
			StakePool: c.config.StakePool,
			Nonce:     nonce,
		})
		if err != nil {
			return 0, errors.Wrap(err, "failed to derive stake deposit receipt")
		}

		_, err = c.sc.GetAccountInfo(receipt, solana.CommitmentConfirmed)
		if err == solana.ErrNoAccountInfo {
			return nonce, nil
		} else if err != nil {
			return 0, errors.Wrap(err, "failed to get account info")
		}
	}

	return 0, ErrNoAvailableNonce
}

// Stakes returns the owner's stake positions by probing the nonce range for
// existing stake deposit receipts.
func (c *Client) Stakes(owner ed25519.PublicKey) ([]StakeInfo, error) {
	var stakes []StakeInfo

	for nonce := uint32(0); nonce < c.config.NonceLimit; nonce++ {
		receipt, _, err := token_staking.GetStakeDepositReceiptAddress(&token_staking.GetStakeDepositReceiptAddressArgs{
			Owner:     owner,
			StakePool: c.config.StakePool,
			Nonce:     nonce,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive stake deposit receipt")
		}

		info, err := c.sc.GetAccountInfo(receipt, solana.CommitmentConfirmed)
		if err == solana.ErrNoAccountInfo {
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "failed to get account info")
		}

		var state token_staking.StakeDepositReceipt
		if err := state.Unmarshal(info.Data); err != nil {
			return nil, errors.Wrapf(err, "invalid stake deposit receipt at nonce %d", nonce)
		}

		stakes = append(stakes, StakeInfo{
			ReceiptAddress: receipt,
			Nonce:          nonce,
			Amount:         state.DepositAmount,
			LockupDuration: state.LockupDuration,
			CreatedAt:      state.DepositTimestamp,
			UnlockAt:       state.UnlockTimestamp(),
		})
	}

	return stakes, nil
}
