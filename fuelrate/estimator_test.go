package fuelrate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
)

func chainOfConstantFuel(n int, fuelRate uint64, avgStepFraction float64) *core.BlockIndex {
	step := uint64(avgStepFraction * float64(common.MaxBlockRunStep))
	fuel := step * fuelRate / 100

	var node *core.BlockIndex
	for i := 0; i < n; i++ {
		node = &core.BlockIndex{
			Height:   uint64(i + 1),
			Fuel:     fuel,
			FuelRate: fuelRate,
			Parent:   node,
		}
	}
	return node
}

func TestEstimateNilTipReturnsInit(t *testing.T) {
	assert.Equal(t, common.InitFuelRate, Estimate(nil, 50))
}

func TestEstimateInsufficientHistoryReturnsInit(t *testing.T) {
	tip := &core.BlockIndex{Height: 5, FuelRate: 100}
	assert.Equal(t, common.InitFuelRate, Estimate(tip, 50))
}

func TestEstimateLowActivityDecreasesRate(t *testing.T) {
	window := 50
	tip := chainOfConstantFuel(window*2+10, 100, 0.5) // below 0.75 threshold
	got := Estimate(tip, window)
	assert.Equal(t, tip.FuelRate*9/10, got)
}

func TestEstimateHighActivityIncreasesRate(t *testing.T) {
	window := 50
	tip := chainOfConstantFuel(window*2+10, 100, 0.95) // above 0.85 threshold
	got := Estimate(tip, window)
	assert.Equal(t, tip.FuelRate*11/10, got)
}

func TestEstimateMidActivityUnchanged(t *testing.T) {
	window := 50
	tip := chainOfConstantFuel(window*2+10, 100, 0.8) // within hysteresis band
	got := Estimate(tip, window)
	assert.Equal(t, tip.FuelRate, got)
}

func TestEstimateFloorsAtMinFuelRate(t *testing.T) {
	window := 50
	tip := chainOfConstantFuel(window*2+10, common.MinFuelRate, 0.1)
	got := Estimate(tip, window)
	assert.GreaterOrEqual(t, got, common.MinFuelRate)
}
