package okcolor

import "image/color"

// Mix interpolates from a to b in OKLab. t is clamped to [0, 1]; t=0
// yields a and t=1 yields b.
func Mix(a, b color.Color, t float64) color.NRGBA {
	t = clamp(t, 0, 1)
	la := labConvert(a).(Lab)
	lb := labConvert(b).(Lab)

	return Lab{
		L:     la.L + (lb.L-la.L)*t,
		A:     la.A + (lb.A-la.A)*t,
		B:     la.B + (lb.B-la.B)*t,
		Alpha: la.Alpha + (lb.Alpha-la.Alpha)*t,
	}.LinearRGBA().NRGBA()
}
