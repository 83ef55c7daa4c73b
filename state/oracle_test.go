package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpos-core/minercore/core"
)

func TestStaticOracleReturnsFixedPrices(t *testing.T) {
	o := StaticOracle{BcoinPrice: 3, FcoinPrice: 5}

	assert.Equal(t, uint64(3), o.BcoinMedianPrice(100))
	assert.Equal(t, uint64(5), o.FcoinMedianPrice(100))
}

func TestStaticOracleBlockMedianPricePoints(t *testing.T) {
	o := StaticOracle{BcoinPrice: 3, FcoinPrice: 5}

	points := o.BlockMedianPricePoints(1)
	assert.Equal(t, uint64(3), points[core.BcoinPriceType])
	assert.Equal(t, uint64(5), points[core.FcoinPriceType])
}
