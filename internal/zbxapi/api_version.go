package zbxapi

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// APIVersion is a Zabbix server version as reported by apiinfo.version.
type APIVersion struct {
	Major      int
	Minor      int
	Patch      int
	PreRelType PreRelType
	PreRelVer  int
}

var ErrInvalidZabbixVer = errors.New("invalid Zabbix version")

var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:(alpha|beta|rc)(\d+))?$`)

var preRelTypes = map[string]PreRelType{
	"alpha": Alpha,
	"beta":  Beta,
	"rc":    RC,
}

// ParseAPIVersion parses "6.4.3" or a pre-release such as "7.0.0alpha2".
func ParseAPIVersion(ver string) (APIVersion, error) {
	m := versionRegex.FindStringSubmatch(ver)
	if m == nil {
		return APIVersion{}, fmt.Errorf("%w: %q", ErrInvalidZabbixVer, ver)
	}

	nums := make([]int, 0, 4)
	for _, s := range []string{m[1], m[2], m[3], m[5]} {
		if s == "" {
			nums = append(nums, 0)
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return APIVersion{}, fmt.Errorf("%w: %q", ErrInvalidZabbixVer, ver)
		}
		nums = append(nums, n)
	}

	v := APIVersion{Major: nums[0], Minor: nums[1], Patch: nums[2], PreRelVer: nums[3]}
	if m[4] != "" {
		v.PreRelType = preRelTypes[m[4]]
	}
	return v, nil
}

func MustParseAPIVersion(ver string) APIVersion {
	v, err := ParseAPIVersion(ver)
	if err != nil {
		panic(err)
	}
	return v
}

func (v APIVersion) IsZero() bool {
	return v == APIVersion{}
}

func (v APIVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.PreRelType != Release {
		s += fmt.Sprintf("%s%d", v.PreRelType, v.PreRelVer)
	}
	return s
}

// Compare returns -1, 0 or +1. A release sorts after its pre-releases.
func (v APIVersion) Compare(w APIVersion) int {
	if c := cmp.Compare(v.Major, w.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, w.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, w.Patch); c != 0 {
		return c
	}
	if c := cmp.Compare(v.PreRelType, w.PreRelType); c != 0 {
		return c
	}
	return cmp.Compare(v.PreRelVer, w.PreRelVer)
}

// AtLeast reports whether v is major.minor or later.
func (v APIVersion) AtLeast(major, minor int) bool {
	return v.Compare(APIVersion{Major: major, Minor: minor}) >= 0
}

type PreRelType int

// Release is the zero value so that a version parsed without a pre-release
// suffix, and the zero APIVersion, are releases.
const (
	Alpha PreRelType = iota - 3
	Beta
	RC // Release Candidate
	Release
)

func (t PreRelType) String() string {
	switch t {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case RC:
		return "rc"
	default:
		return ""
	}
}
