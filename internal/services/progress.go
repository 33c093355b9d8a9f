package services

import (
	"io"

	"mediavault/internal/services/dto"
)

// progressReader reports bytes-transferred / total-bytes as the storage
// client drains the upload body. Reported ratios are clamped so they
// never decrease and never exceed 1.0.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   float64
	report dto.ProgressFunc
}

func newProgressReader(r io.Reader, total int64, report dto.ProgressFunc) *progressReader {
	return &progressReader{r: r, total: total, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.emit()
	}
	return n, err
}

func (p *progressReader) emit() {
	if p.report == nil || p.total <= 0 {
		return
	}
	ratio := float64(p.read) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	if ratio <= p.last {
		return
	}
	p.last = ratio
	p.report(ratio)
}

// finish reports the terminal 1.0 after a successful upload.
func (p *progressReader) finish() {
	if p.report == nil || p.last >= 1 {
		return
	}
	p.last = 1
	p.report(1)
}
