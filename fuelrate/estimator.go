package fuelrate

import (
	log "github.com/sirupsen/logrus"

	"github.com/dpos-core/minercore/common"
	"github.com/dpos-core/minercore/core"
	"github.com/dpos-core/minercore/util"
)

var logger = util.WithPrefix("fuel")

// Estimate computes the fuel rate for the block that extends tip:
// average the run-step-equivalent cost (fuel/fuelRate*100) over the
// last burnWindow blocks ending at tip, then adjust tip's own fuel
// rate down 10% if that average sits below 75% of MaxBlockRunStep, up
// 10% if it sits above 85%, or leave it unchanged in between. The
// result is floored at common.MinFuelRate.
//
// tip may be nil (no blocks mined yet) or have fewer than
// 2*burnWindow ancestors; both return common.InitFuelRate.
func Estimate(tip *core.BlockIndex, burnWindow int) uint64 {
	if tip == nil {
		return common.InitFuelRate
	}
	if burnWindow <= 0 {
		burnWindow = common.DefaultBurnBlockSize
	}
	if uint64(burnWindow*2) >= tip.Height-1 {
		return common.InitFuelRate
	}

	var totalStep uint64
	node := tip
	for i := 0; i < burnWindow; i++ {
		if node == nil {
			return common.InitFuelRate
		}
		if node.FuelRate == 0 {
			return common.InitFuelRate
		}
		totalStep += node.Fuel / node.FuelRate * 100
		node = node.Parent
	}
	avgStep := totalStep / uint64(burnWindow)

	var newRate uint64
	switch {
	case float64(avgStep) < float64(common.MaxBlockRunStep)*0.75:
		newRate = tip.FuelRate * 9 / 10
	case float64(avgStep) > float64(common.MaxBlockRunStep)*0.85:
		newRate = tip.FuelRate * 11 / 10
	default:
		newRate = tip.FuelRate
	}
	if newRate < common.MinFuelRate {
		newRate = common.MinFuelRate
	}

	logger.WithFields(log.Fields{
		"preFuelRate": tip.FuelRate,
		"fuelRate":    newRate,
		"height":      tip.Height,
	}).Debug("fuel rate re-estimated")

	return newRate
}
