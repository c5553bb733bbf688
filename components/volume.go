package components

import "math"

// VolumeUnit tells how a Volume value is expressed
type VolumeUnit int

const (
	VolumeLinear VolumeUnit = iota
	VolumeDecibels
)

// Volume is a loudness expressed either as linear amplitude or in decibels
type Volume struct {
	Value float64
	Unit  VolumeUnit
}

// LinearVolume returns a linear-amplitude volume (1.0 = unity gain).
func LinearVolume(v float64) Volume {
	return Volume{Value: v, Unit: VolumeLinear}
}

// DecibelVolume returns a volume in decibels (0 dB = unity gain).
func DecibelVolume(db float64) Volume {
	return Volume{Value: db, Unit: VolumeDecibels}
}

// ToLinear converts the volume to linear amplitude.
func (v Volume) ToLinear() float64 {
	if v.Unit == VolumeDecibels {
		return DecibelsToLinear(v.Value)
	}
	return v.Value
}

// DecibelsToLinear converts using linear = 10^(dB/20).
func DecibelsToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDecibels is the inverse of DecibelsToLinear. Zero maps to -Inf.
func LinearToDecibels(linear float64) float64 {
	return 20 * math.Log10(linear)
}
