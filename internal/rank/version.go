package rank

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Compare orders two version strings. Canonical semver is compared with
// x/mod/semver; anything else (4-segment versions, ".Final" qualifiers)
// falls back to numeric comparison per dot-separated segment, so
// "10.1.9" < "10.1.10".
func Compare(a, b string) int {
	av, bv := canonical(a), canonical(b)
	if semver.IsValid(av) && semver.IsValid(bv) {
		return semver.Compare(av, bv)
	}
	return compareSegments(a, b)
}

// Major returns the leading numeric component of a version string.
func Major(v string) string {
	cv := canonical(v)
	if semver.IsValid(cv) {
		return strings.TrimPrefix(semver.Major(cv), "v")
	}
	return segmentAt(segments(v), 0)
}

// SameMajor reports whether to stays within from's major version.
func SameMajor(from, to string) bool {
	return Major(from) == Major(to)
}

// JumpType classifies an upgrade as "patch", "minor" or "major" by the
// first version component that changes.
func JumpType(from, to string) string {
	fs, ts := segments(from), segments(to)
	if segmentAt(fs, 0) != segmentAt(ts, 0) {
		return "major"
	}
	if segmentAt(fs, 1) != segmentAt(ts, 1) {
		return "minor"
	}
	return "patch"
}

func canonical(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func segments(v string) []string {
	return strings.Split(strings.TrimPrefix(v, "v"), ".")
}

// segmentAt returns the i-th dot segment, with missing segments read as 0.
func segmentAt(segs []string, i int) string {
	if i < len(segs) {
		return segs[i]
	}
	return "0"
}

func compareSegments(a, b string) int {
	as, bs := segments(a), segments(b)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		sa, sb := segmentAt(as, i), segmentAt(bs, i)
		na, errA := strconv.Atoi(sa)
		nb, errB := strconv.Atoi(sb)
		if errA == nil && errB == nil {
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		// Non-numeric qualifiers ("Final", "RC1") compare lexically.
		if sa != sb {
			if sa < sb {
				return -1
			}
			return 1
		}
	}
	return 0
}
