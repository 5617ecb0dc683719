package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/mmap"
)

func mapFile(t *testing.T, contents string) *mmap.ReaderAt {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	ra, err := mmap.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { ra.Close() })
	return ra
}

func TestPlanRangesBoundaries(t *testing.T) {
	lines := "Aden;25.1\nBern;3.4\nCairo;31.0\nDakar;27.9\nErfurt;-1.2\nFoggia;19.9\n"
	ra := mapFile(t, lines)

	for workers := 1; workers <= 8; workers++ {
		ranges := planRanges(ra, workers)
		require.NotEmpty(t, ranges, "workers=%d", workers)

		assert.Equal(t, int64(0), ranges[0].start)
		assert.Equal(t, int64(len(lines)), ranges[len(ranges)-1].end)

		for i, rng := range ranges {
			assert.LessOrEqual(t, rng.start, rng.end)
			if i > 0 {
				// consecutive ranges are separated by exactly the
				// newline byte, which belongs to neither
				assert.Equal(t, ranges[i-1].end+1, rng.start)
				assert.Equal(t, byte('\n'), ra.At(int(ranges[i-1].end)))
			}
		}
	}
}

func TestPlanRangesCoverEveryByte(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, "Station%02d;%d.%d\n", i, i%100, i%10)
	}
	contents := sb.String()
	ra := mapFile(t, contents)

	for _, workers := range []int{1, 2, 3, 7, 16} {
		ranges := planRanges(ra, workers)

		chunks := make([]string, 0, len(ranges))
		for _, rng := range ranges {
			buf := make([]byte, rng.end-rng.start)
			_, err := ra.ReadAt(buf, rng.start)
			require.NoError(t, err)
			chunks = append(chunks, string(buf))
		}
		// re-inserting the stripped separator newlines must rebuild the
		// file exactly
		assert.Equal(t, contents, strings.Join(chunks, "\n"), "workers=%d", workers)
	}
}

func TestPlanRangesSmallFile(t *testing.T) {
	ra := mapFile(t, "Oslo;1.2\n")

	ranges := planRanges(ra, 32)
	// far fewer ranges than workers for a tiny file
	require.NotEmpty(t, ranges)
	assert.Less(t, len(ranges), 32)
	assert.Equal(t, int64(0), ranges[0].start)
	assert.Equal(t, int64(9), ranges[len(ranges)-1].end)
}

func TestPlanRangesEmptyFile(t *testing.T) {
	ra := mapFile(t, "")
	assert.Empty(t, planRanges(ra, 4))
}

func TestPlanRangesBoundaryOnFinalNewline(t *testing.T) {
	contents := "A;1.0\nB;2.0\n"
	ra := mapFile(t, contents)

	// with enough workers some tentative boundary lands exactly on the
	// trailing newline; the final range must still end at fileSize
	for workers := 1; workers <= 2*len(contents); workers++ {
		ranges := planRanges(ra, workers)
		require.NotEmpty(t, ranges, "workers=%d", workers)
		assert.Equal(t, int64(len(contents)), ranges[len(ranges)-1].end, "workers=%d", workers)
	}
}

func TestPlanRangesNeverEmpty(t *testing.T) {
	ra := mapFile(t, "A;1.0\n\n\nB;2.0\n")

	for workers := 1; workers <= 20; workers++ {
		for _, rng := range planRanges(ra, workers) {
			assert.Less(t, rng.start, rng.end, "workers=%d", workers)
		}
	}
}

func TestPlanRangesGrowsPastNewlineFreeSlice(t *testing.T) {
	// one enormous record followed by normal ones: no tentative slice
	// inside the big record may become a boundary
	contents := strings.Repeat("x", 2048) + ";1.0\nOslo;4.5\nPune;31.2\n"
	ra := mapFile(t, contents)

	ranges := planRanges(ra, 16)
	require.NotEmpty(t, ranges)
	assert.Equal(t, int64(0), ranges[0].start)
	assert.GreaterOrEqual(t, ranges[0].end, int64(2052))
	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, byte('\n'), ra.At(int(ranges[i-1].end)))
	}
}
