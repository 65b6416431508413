package hal

import "time"

// SquareWave renders n as 16-bit little-endian stereo PCM lasting d.
func SquareWave(n Note, d time.Duration, sampleRate int, amplitude int16) []byte {
	period := n.Period()
	if period <= 0 || d <= 0 || sampleRate <= 0 {
		return nil
	}
	samples := int(int64(d) * int64(sampleRate) / int64(time.Second))
	half := int64(period) * int64(sampleRate) / int64(time.Second) / 2
	if half <= 0 {
		half = 1
	}

	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		s := amplitude
		if (int64(i)/half)%2 == 1 {
			s = -amplitude
		}
		j := i * 4
		buf[j+0] = byte(s)
		buf[j+1] = byte(s >> 8)
		buf[j+2] = byte(s)
		buf[j+3] = byte(s >> 8)
	}
	return buf
}
