package gl2d

// BlendFactor is one multiplier in a blend equation.
type BlendFactor uint8

// Blend factors, matching the fixed-function set every driver exposes.
const (
	FactorZero BlendFactor = iota + 1
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstColor
	FactorOneMinusDstColor
	FactorDstAlpha
	FactorOneMinusDstAlpha
)

// BlendOperation combines the weighted source and destination terms.
type BlendOperation uint8

// Blend operations.
const (
	OpAdd BlendOperation = iota + 1
	OpSubtract
	OpRevSubtract
)

// BlendMode packs a full blend configuration (color and alpha factors
// plus one operation each) into a single comparable value. The zero
// value is "no blending"; BlendInvalid is the executor's "not yet set"
// sentinel and never names a real mode.
type BlendMode uint32

// ComposeBlendMode builds a custom blend mode from its six components.
func ComposeBlendMode(srcColor, dstColor BlendFactor, colorOp BlendOperation,
	srcAlpha, dstAlpha BlendFactor, alphaOp BlendOperation) BlendMode {
	return BlendMode(uint32(srcColor)<<0 |
		uint32(dstColor)<<4 |
		uint32(colorOp)<<8 |
		uint32(srcAlpha)<<12 |
		uint32(dstAlpha)<<16 |
		uint32(alphaOp)<<20)
}

// Predefined blend modes.
var (
	// BlendNone disables blending entirely.
	BlendNone = BlendMode(0)

	// BlendAlpha is conventional alpha blending.
	BlendAlpha = ComposeBlendMode(
		FactorSrcAlpha, FactorOneMinusSrcAlpha, OpAdd,
		FactorOne, FactorOneMinusSrcAlpha, OpAdd)

	// BlendAdd is additive blending.
	BlendAdd = ComposeBlendMode(
		FactorSrcAlpha, FactorOne, OpAdd,
		FactorZero, FactorOne, OpAdd)

	// BlendMod is color modulation.
	BlendMod = ComposeBlendMode(
		FactorZero, FactorSrcColor, OpAdd,
		FactorZero, FactorOne, OpAdd)

	// BlendInvalid marks "no blend state applied yet" in the executor.
	BlendInvalid = BlendMode(0xFFFFFFFF)
)

// SrcColorFactor returns the source color factor component.
func (m BlendMode) SrcColorFactor() BlendFactor { return BlendFactor(m >> 0 & 0xF) }

// DstColorFactor returns the destination color factor component.
func (m BlendMode) DstColorFactor() BlendFactor { return BlendFactor(m >> 4 & 0xF) }

// ColorOperation returns the color operation component.
func (m BlendMode) ColorOperation() BlendOperation { return BlendOperation(m >> 8 & 0xF) }

// SrcAlphaFactor returns the source alpha factor component.
func (m BlendMode) SrcAlphaFactor() BlendFactor { return BlendFactor(m >> 12 & 0xF) }

// DstAlphaFactor returns the destination alpha factor component.
func (m BlendMode) DstAlphaFactor() BlendFactor { return BlendFactor(m >> 16 & 0xF) }

// AlphaOperation returns the alpha operation component.
func (m BlendMode) AlphaOperation() BlendOperation { return BlendOperation(m >> 20 & 0xF) }
