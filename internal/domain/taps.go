package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// collectSecret is the shared secret the upstream client bakes into every
// tap submission hash. The server recomputes the same digest to reject
// tampered amounts.
const collectSecret = "7be2a16a82054ee58398c5edb7ac4a5a"

// CollectHash computes the integrity digest a tap submission must carry:
// md5 over the batch amount, the current sequence token and the shared
// secret, hex encoded.
func CollectHash(amount, collectSeqNo int) string {
	sum := md5.Sum([]byte(strconv.Itoa(amount) + strconv.Itoa(collectSeqNo) + collectSecret))
	return hex.EncodeToString(sum[:])
}

// TapGain simulates the reward of a single tap. A tap is worthless once its
// base value meets or exceeds the energy left, and a boosted tap is only
// possible while the boosted value still fits in the remaining energy.
// Within those bounds a roll against bonusChance/100 decides between the
// boosted value (tapValue*bonusRatio/100) and the base value.
//
// roll draws a uniform integer in [0, n); pass RollPercent for production
// behaviour or a deterministic stub in tests.
func TapGain(tapValue, leftEnergy, bonusChance, bonusRatio int, roll func(n int) int) int {
	if tapValue >= leftEnergy {
		return 0
	}
	boosted := tapValue * bonusRatio / 100
	if boosted > leftEnergy {
		return 0
	}
	if roll(101) <= bonusChance/100 {
		return boosted
	}
	return tapValue
}
