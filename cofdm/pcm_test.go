package cofdm

import "testing"

func TestQuantizeClamps(t *testing.T) {
	if got := quantize(2.0); got != 32767 {
		t.Fatalf("quantize(2.0) = %d, want 32767", got)
	}
	if got := quantize(-2.0); got != -32768 {
		t.Fatalf("quantize(-2.0) = %d, want -32768", got)
	}
	if got := quantize(0); got != 0 {
		t.Fatalf("quantize(0) = %d, want 0", got)
	}
}

func TestChannelsFor(t *testing.T) {
	cases := map[int]int{0: 1, 1: 2, 2: 2, 4: 2, 3: 1, 99: 1}
	for sel, want := range cases {
		if got := channelsFor(sel); got != want {
			t.Fatalf("channelsFor(%d) = %d, want %d", sel, got, want)
		}
	}
}

func TestWriteSampleChannelMapping(t *testing.T) {
	v := complex(0.5, -0.25)

	buf1 := make([]int16, 2)
	writeSample(buf1, 1, 0, v)
	if buf1[1] != 0 {
		t.Fatalf("channel_select=1: right channel = %d, want 0", buf1[1])
	}
	if buf1[0] != quantize(real(v)) {
		t.Fatalf("channel_select=1: left channel = %d, want %d", buf1[0], quantize(real(v)))
	}

	buf2 := make([]int16, 2)
	writeSample(buf2, 2, 0, v)
	if buf2[0] != 0 {
		t.Fatalf("channel_select=2: left channel = %d, want 0", buf2[0])
	}
	if buf2[1] != quantize(real(v)) {
		t.Fatalf("channel_select=2: right channel = %d, want %d", buf2[1], quantize(real(v)))
	}

	buf4 := make([]int16, 2)
	writeSample(buf4, 4, 0, v)
	if buf4[0] != quantize(real(v)) || buf4[1] != quantize(imag(v)) {
		t.Fatalf("channel_select=4: got (%d,%d), want (%d,%d)", buf4[0], buf4[1], quantize(real(v)), quantize(imag(v)))
	}

	bufMono := make([]int16, 1)
	writeSample(bufMono, 0, 0, v)
	if bufMono[0] != quantize(real(v)) {
		t.Fatalf("mono: got %d, want %d", bufMono[0], quantize(real(v)))
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := complex(1.0, 2.0)
	b := complex(3.0, -4.0)
	if got := lerp(a, b, 0); got != a {
		t.Fatalf("lerp(a,b,0) = %v, want %v", got, a)
	}
	if got := lerp(a, b, 1); got != b {
		t.Fatalf("lerp(a,b,1) = %v, want %v", got, b)
	}
}
