package state

import (
	"github.com/dpos-core/minercore/core"
)

// StaticOracle is a fixed-price core.PriceOracle: useful for
// regtest/standalone runs where no live price-feed transactions are
// expected to drive the WICC/WGRT median, and for tests. A production
// deployment supplies its own oracle backed by the chain's actual
// price-median transactions.
type StaticOracle struct {
	BcoinPrice uint64
	FcoinPrice uint64
}

var _ core.PriceOracle = StaticOracle{}

// BcoinMedianPrice implements core.PriceOracle.
func (o StaticOracle) BcoinMedianPrice(height uint64) uint64 { return o.BcoinPrice }

// FcoinMedianPrice implements core.PriceOracle.
func (o StaticOracle) FcoinMedianPrice(height uint64) uint64 { return o.FcoinPrice }

// BlockMedianPricePoints implements core.PriceOracle.
func (o StaticOracle) BlockMedianPricePoints(height uint64) map[core.CoinPriceType]uint64 {
	return map[core.CoinPriceType]uint64{
		core.BcoinPriceType: o.BcoinPrice,
		core.FcoinPriceType: o.FcoinPrice,
	}
}
