// Package display holds the pixel format and window defaults shared by the
// presentation backends.
package display

// Packed pixel format constants. Buffers carry 0x00RRGGBB values; the high
// byte is unused and backends supply full alpha on expansion.
const (
	// RGBABytesPerPixel is the number of bytes per pixel after RGBA expansion
	RGBABytesPerPixel = 4
	// RShift is the bit shift for the red component in a packed pixel
	RShift = 16
	// GShift is the bit shift for the green component in a packed pixel
	GShift = 8
	// BShift is the bit shift for the blue component in a packed pixel
	BShift = 0
	// ColorMask extracts one component after shifting
	ColorMask = 0xFF
	// FullAlpha is the alpha value backends use for every expanded pixel
	FullAlpha = 0xFF
)

// Window and buffer defaults for hosts that do not care to pick their own.
const (
	// DefaultBufferWidth is the default compositing buffer width
	DefaultBufferWidth = 320
	// DefaultBufferHeight is the default compositing buffer height
	DefaultBufferHeight = 240
	// DefaultPixelScale is the default window magnification per buffer pixel
	DefaultPixelScale = 2
	// DefaultWindowWidth is the default window width
	DefaultWindowWidth = DefaultBufferWidth * DefaultPixelScale
	// DefaultWindowHeight is the default window height
	DefaultWindowHeight = DefaultBufferHeight * DefaultPixelScale
)

// Unpack splits a packed pixel into its components.
func Unpack(p uint32) (r, g, b uint8) {
	return uint8(p >> RShift & ColorMask),
		uint8(p >> GShift & ColorMask),
		uint8(p >> BShift & ColorMask)
}

// Pack builds a packed pixel from components.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<RShift | uint32(g)<<GShift | uint32(b)<<BShift
}
