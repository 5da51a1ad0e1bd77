package transfer

import (
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
)

// sampleInterval is the wall-clock window for the smoothed transfer rate.
// Sampling instead of differentiating per chunk keeps the reported speed
// stable when the server delivers many small chunks.
const sampleInterval = 500 * time.Millisecond

type progressTracker struct {
	total       int64
	transferred int64

	rate        int64
	sampleTime  time.Time
	sampleBytes int64
}

func newProgressTracker(total int64, now time.Time) *progressTracker {
	if total < 0 {
		total = 0
	}
	return &progressTracker{
		total:      total,
		sampleTime: now,
	}
}

// observe records n received bytes and returns the progress snapshot for
// this chunk. The rate is resampled once sampleInterval has elapsed and
// reported unchanged between samples.
func (p *progressTracker) observe(n int, now time.Time) model.UpdateProgress {
	p.transferred += int64(n)

	if elapsed := now.Sub(p.sampleTime); elapsed >= sampleInterval {
		delta := p.transferred - p.sampleBytes
		p.rate = int64(float64(delta) / elapsed.Seconds())
		p.sampleTime = now
		p.sampleBytes = p.transferred
	}

	return model.UpdateProgress{
		Percent:        percent(p.transferred, p.total),
		Transferred:    p.transferred,
		Total:          p.total,
		BytesPerSecond: p.rate,
	}
}

func percent(transferred, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(transferred * 100 / total)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
