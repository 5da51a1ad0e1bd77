package vercomp

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// compare result
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// Compare orders two dotted version strings segment by segment. A leading
// "v" is stripped, missing trailing segments count as 0 and a segment that
// does not parse as a number counts as 0, so a malformed remote version
// never breaks an update check.
func Compare(a, b string) int {
	segsA := strings.Split(strip(a), ".")
	segsB := strings.Split(strip(b), ".")

	n := len(segsA)
	if len(segsB) > n {
		n = len(segsB)
	}
	for i := 0; i < n; i++ {
		na := segment(segsA, i)
		nb := segment(segsB, i)
		if na < nb {
			return Less
		}
		if na > nb {
			return Greater
		}
	}
	return Equal
}

func strip(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 0 && (v[0] == 'v' || v[0] == 'V') {
		return v[1:]
	}
	return v
}

func segment(segs []string, i int) int {
	if i >= len(segs) {
		return 0
	}
	n, err := strconv.Atoi(segs[i])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

type CompareResult struct {
	Comparable bool
	Result     int // -1, 0, 1 (only when comparable)
}

// StrictCompare orders two strict semantic versions, prerelease aware. It
// reports Comparable false when either side is not strict semver; callers
// fall back to the lenient Compare above.
func StrictCompare(a, b string) CompareResult {
	va, err := semver.NewVersion(strip(a))
	if err != nil {
		return CompareResult{Comparable: false}
	}
	vb, err := semver.NewVersion(strip(b))
	if err != nil {
		return CompareResult{Comparable: false}
	}
	return CompareResult{
		Comparable: true,
		Result:     va.Compare(vb),
	}
}
