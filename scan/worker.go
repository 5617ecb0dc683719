package scan

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

type readResult struct {
	n   int
	err error
}

// worker scans one byteRange of the mapped file and aggregates it into a
// worker-local station table.
type worker struct {
	ra  *mmap.ReaderAt
	rng byteRange
	cfg *config

	buf  []byte // double buffer, two halves of cfg.readChunk bytes
	name []byte // fixed-capacity token scratch
	val  []byte

	tbl *stationTable
}

func newWorker(ra *mmap.ReaderAt, rng byteRange, cfg *config) *worker {
	return &worker{
		ra:   ra,
		rng:  rng,
		cfg:  cfg,
		buf:  make([]byte, 2*cfg.readChunk),
		name: make([]byte, 0, cfg.maxTokenLen),
		val:  make([]byte, 0, cfg.maxTokenLen),
		tbl:  newStationTable(),
	}
}

func (w *worker) half(i int) []byte {
	return w.buf[i*w.cfg.readChunk : (i+1)*w.cfg.readChunk]
}

// run drains the worker's range with exactly one read in flight at a
// time: while the tokenizer consumes one half of the double buffer, the
// other half is already being filled.
func (w *worker) run(ctx context.Context) (*stationTable, error) {
	reads := make(chan readResult, 1)
	readAhead := func(dst []byte, off int64) {
		go func() {
			n, err := w.readAt(dst, off)
			reads <- readResult{n: n, err: err}
		}()
	}

	// The first read must land before any parsing can happen.
	half := 0
	off := w.rng.start
	readAhead(w.half(half), off)

	inName := true
	for {
		res := <-reads
		if res.err != nil {
			return nil, fmt.Errorf("unable to read chunk at %d: %w", off, res.err)
		}
		if res.n == 0 {
			break
		}

		filled := w.half(half)[:res.n]
		filledOff := off
		off += int64(res.n)
		half = 1 - half

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		readAhead(w.half(half), off)

		var err error
		inName, err = w.tokenize(filled, filledOff, inName)
		if err != nil {
			// the in-flight read must land before the caller can close
			// the mapping
			<-reads
			return nil, err
		}
	}

	if err := w.flush(inName); err != nil {
		return nil, err
	}
	return w.tbl, nil
}

// readAt fills dst from the mapped file, clamped to the worker's range.
// A zero return means the range is exhausted.
func (w *worker) readAt(dst []byte, off int64) (int, error) {
	remaining := w.rng.end - off
	if remaining <= 0 {
		return 0, nil
	}
	if int64(len(dst)) > remaining {
		dst = dst[:remaining]
	}
	n, err := w.ra.ReadAt(dst, off)
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// tokenize classifies each byte of buf: bytes accumulate into the current
// token, ';' closes the station name, '\n' closes the temperature literal
// and folds the record. Accumulation state carries across calls, so a
// record may straddle any number of buffer refills. Returns whether the
// next byte continues a name token.
func (w *worker) tokenize(buf []byte, off int64, inName bool) (bool, error) {
	for i, c := range buf {
		switch {
		case c == ';' && inName:
			if len(w.name) == 0 {
				return inName, &MalformedRecordError{Offset: off + int64(i), Reason: "empty station name"}
			}
			inName = false
		case c == '\n':
			if inName {
				if len(w.name) == 0 {
					return inName, &MalformedRecordError{Offset: off + int64(i), Reason: "empty record"}
				}
				return inName, &MalformedRecordError{Offset: off + int64(i), Reason: "record has no ';' delimiter"}
			}
			if err := w.foldRecord(off + int64(i)); err != nil {
				return inName, err
			}
			inName = true
		default:
			if inName {
				if len(w.name) == cap(w.name) {
					return inName, &MalformedRecordError{Offset: off + int64(i), Reason: "station name exceeds token capacity"}
				}
				w.name = append(w.name, c)
			} else {
				if len(w.val) == cap(w.val) {
					return inName, &MalformedRecordError{Offset: off + int64(i), Reason: "temperature exceeds token capacity"}
				}
				w.val = append(w.val, c)
			}
		}
	}
	return inName, nil
}

// foldRecord parses the pending temperature token and folds the record
// into the worker table, then resets both token buffers.
func (w *worker) foldRecord(off int64) error {
	v, err := parseFixedDecimal(w.val)
	if err != nil {
		return &MalformedRecordError{Offset: off, Reason: fmt.Sprintf("bad temperature %q: %v", w.val, err)}
	}
	w.tbl.observe(w.name, v)
	w.name = w.name[:0]
	w.val = w.val[:0]
	return nil
}

// flush folds a final record left unterminated because the planner strips
// the newline separating two ranges.
func (w *worker) flush(inName bool) error {
	if inName {
		if len(w.name) > 0 {
			return &MalformedRecordError{Offset: w.rng.end, Reason: "record truncated before ';'"}
		}
		return nil
	}
	return w.foldRecord(w.rng.end)
}
