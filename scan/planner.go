package scan

import "golang.org/x/exp/mmap"

// byteRange is a half-open [start, end) slice of the input file holding
// only whole records. The newline separating two adjacent ranges belongs
// to neither of them.
type byteRange struct {
	start int64
	end   int64
}

// planRanges splits the mapped file into up to workers ranges of roughly
// equal size. Every internal boundary is snapped backward to the nearest
// newline so no record straddles two ranges. A tentative slice with no
// newline at all does not become a boundary; the range simply grows into
// the next slice. Ranges are never empty and the final range always ends
// at fileSize, so small files may yield far fewer ranges than workers.
func planRanges(ra *mmap.ReaderAt, workers int) []byteRange {
	size := int64(ra.Len())
	if size == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	tentative := size / int64(workers)
	if tentative < 1 {
		tentative = 1
	}

	ranges := make([]byteRange, 0, workers)
	start := int64(0)
	for i := 1; i < workers && start < size; i++ {
		end := int64(i) * tentative
		if end <= start {
			continue
		}
		if end >= size {
			break
		}

		nl := end
		for nl > start && ra.At(int(nl)) != '\n' {
			nl--
		}
		if nl == start || ra.At(int(nl)) != '\n' {
			continue // no usable boundary in this slice, keep growing
		}
		if nl+1 >= size {
			break // the final range must end at fileSize, not before it
		}

		ranges = append(ranges, byteRange{start: start, end: nl})
		start = nl + 1
	}
	if start < size {
		ranges = append(ranges, byteRange{start: start, end: size})
	}
	return ranges
}
