package tui

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer of float64 samples.
// The zero value is not usable; construct with NewRingBuffer.
type RingBuffer struct {
	buf []float64
	pos int // next write position
	n   int // valid samples, n <= len(buf)
}

// NewRingBuffer creates a ring buffer with the given capacity.
// Capacities below one are raised to one.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{buf: make([]float64, capacity)}
}

// Push adds a sample, overwriting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	r.buf[r.pos] = v
	r.pos = (r.pos + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

// Len returns the number of valid samples.
func (r *RingBuffer) Len() int { return r.n }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.buf) }

// Last returns the most recent sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.n == 0 {
		return 0
	}
	return r.buf[(r.pos-1+len(r.buf))%len(r.buf)]
}

// Slice returns the samples in chronological order, oldest first.
// An empty buffer returns nil.
func (r *RingBuffer) Slice() []float64 {
	if r.n == 0 {
		return nil
	}
	out := make([]float64, r.n)
	first := (r.pos - r.n + len(r.buf)) % len(r.buf)
	copied := copy(out, r.buf[first:min(first+r.n, len(r.buf))])
	copy(out[copied:], r.buf[:r.n-copied])
	return out
}

// Resize changes the capacity, keeping the most recent samples that fit.
// Resizing to the current capacity is a no-op.
func (r *RingBuffer) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(r.buf) {
		return
	}
	kept := r.Slice()
	if len(kept) > capacity {
		kept = kept[len(kept)-capacity:]
	}
	r.buf = make([]float64, capacity)
	r.pos = copy(r.buf, kept) % capacity
	r.n = len(kept)
}

// Reset clears all samples without releasing the backing array.
func (r *RingBuffer) Reset() {
	r.pos = 0
	r.n = 0
}

// RenderSparkline converts percentage values (0..100) into a one-line
// sparkline of Unicode block characters. Out-of-range values are clamped.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		} else if v > 100 {
			v = 100
		}
		runes[i] = sparklineChars[int(v/100.0*7.0)]
	}
	return string(runes)
}

// brailleDots maps (column 0-1, row 0-3) within one braille cell to the
// dot bit added to the U+2800 base rune.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40}, // left column: dots 1,2,3,7
	{0x08, 0x10, 0x20, 0x80}, // right column: dots 4,5,6,8
}

// RenderBrailleChart plots percentage values (0..100) as a braille dot
// chart spanning `rows` text rows and `width` character columns. Each
// cell packs a 2x4 dot grid, so a row of width w holds 2*w samples.
// Values are plotted right-aligned with the most recent sample on the
// right edge; out-of-range values are clamped.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}

	dotRows := rows * 4
	dotCols := width * 2

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)

	for i, v := range values {
		if v < 0 {
			v = 0
		} else if v > 100 {
			v = 100
		}
		dotCol := offset + i
		dotRow := dotRows - 1 - int(v/100.0*float64(dotRows-1))
		grid[dotRow/4][dotCol/2] |= brailleDots[dotCol%2][dotRow%4]
	}

	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}
