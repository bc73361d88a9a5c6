package sdr

// rtl-sdr dongles deliver interleaved unsigned 8-bit I/Q centred on 127.5.
const iqOffset = 127.5

// iqLUT maps a raw byte to its normalised [-1, 1] value.
var iqLUT = func() (lut [256]float64) {
	for i := range lut {
		lut[i] = (float64(i) - iqOffset) / iqOffset
	}
	return
}()

// DecodeIQ converts interleaved uint8 I/Q pairs into complex samples.
// A trailing odd byte is ignored.
func DecodeIQ(raw []byte, dst []complex128) []complex128 {
	n := len(raw) / 2
	if cap(dst) < n {
		dst = make([]complex128, n)
	}
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = complex(iqLUT[raw[2*i]], iqLUT[raw[2*i+1]])
	}
	return dst
}
