package prediction

import "github.com/oomph-ac/locomotion/utils"

// CompressedFlags is the 8-bit intent set transmitted with every move. The low four bits match the fixed
// walk/sprint/strafe/aim layout; the high four carry the custom mode intents and crouch.
type CompressedFlags uint8

const (
	FlagBitWalk uint8 = iota
	FlagBitSprint
	FlagBitStrafe
	FlagBitAim
	FlagBitWallRun
	FlagBitSlide
	FlagBitProne
	FlagBitCrouch
)

// Intents are the boolean intents held by compressed flags.
type Intents struct {
	Walk   bool
	Sprint bool
	Strafe bool
	Aim    bool

	WallRun bool
	Slide   bool
	Prone   bool
	Crouch  bool
}

// Compress packs intents into compressed flags.
func Compress(in Intents) CompressedFlags {
	var f uint8
	f = utils.SetBit(f, FlagBitWalk, in.Walk)
	f = utils.SetBit(f, FlagBitSprint, in.Sprint)
	f = utils.SetBit(f, FlagBitStrafe, in.Strafe)
	f = utils.SetBit(f, FlagBitAim, in.Aim)
	f = utils.SetBit(f, FlagBitWallRun, in.WallRun)
	f = utils.SetBit(f, FlagBitSlide, in.Slide)
	f = utils.SetBit(f, FlagBitProne, in.Prone)
	f = utils.SetBit(f, FlagBitCrouch, in.Crouch)
	return CompressedFlags(f)
}

// Has reports whether the given bit is set.
func (f CompressedFlags) Has(bit uint8) bool {
	return utils.HasBit(uint8(f), bit)
}

// Intents unpacks the compressed flags.
func (f CompressedFlags) Intents() Intents {
	return Intents{
		Walk:    f.Has(FlagBitWalk),
		Sprint:  f.Has(FlagBitSprint),
		Strafe:  f.Has(FlagBitStrafe),
		Aim:     f.Has(FlagBitAim),
		WallRun: f.Has(FlagBitWallRun),
		Slide:   f.Has(FlagBitSlide),
		Prone:   f.Has(FlagBitProne),
		Crouch:  f.Has(FlagBitCrouch),
	}
}
