package core

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBlockInflateInterestZeroStake(t *testing.T) {
	acc := Account{Stake: big.NewInt(0)}
	assert.Equal(t, uint64(0), acc.ComputeBlockInflateInterest(100))
}

func TestComputeBlockInflateInterestNilStake(t *testing.T) {
	acc := Account{}
	assert.Equal(t, uint64(0), acc.ComputeBlockInflateInterest(100))
}

func TestComputeBlockInflateInterestPositiveStake(t *testing.T) {
	acc := Account{Stake: big.NewInt(1_000_000_000)}
	got := acc.ComputeBlockInflateInterest(100)
	assert.Greater(t, got, uint64(0))
}

func TestComputeBlockInflateInterestScalesWithStake(t *testing.T) {
	small := Account{Stake: big.NewInt(1_000_000)}
	large := Account{Stake: big.NewInt(1_000_000_000)}
	assert.Greater(t, large.ComputeBlockInflateInterest(1), small.ComputeBlockInflateInterest(1))
}
