package perfbudget

// Measurements are one build's page weight and field vitals.
type Measurements struct {
	JavaScriptBytes int64
	CSSBytes        int64
	ImageBytes      int64
	LCPMillis       float64
	FIDMillis       float64
	CLS             float64
	TTFBMillis      float64
}

// TotalBytes is the sum of all asset sizes.
func (m Measurements) TotalBytes() int64 {
	return m.JavaScriptBytes + m.CSSBytes + m.ImageBytes
}

// Simulated returns fixed placeholder numbers. Nothing is measured; the
// checker exists so CI has a gate to wire real numbers into later.
func Simulated() Measurements {
	return Measurements{
		JavaScriptBytes: 245 * 1024,
		CSSBytes:        48 * 1024,
		ImageBytes:      380 * 1024,
		LCPMillis:       2100,
		FIDMillis:       85,
		CLS:             0.08,
		TTFBMillis:      620,
	}
}
