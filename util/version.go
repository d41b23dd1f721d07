package util

import (
	"strings"

	"golang.org/x/mod/semver"
)

var (
	InvalidVersionError       = NewError("invalid version found")
	VersionNotCompatibleError = NewError("versions not compatible")
)

type Version string

func (vs Version) String() string {
	return string(vs)
}

// GO converts Version to golang style semver string; it is prefixed with
// 'v'.
func (vs Version) GO() string {
	s := string(vs)
	if strings.HasPrefix(s, "v") {
		return s
	}

	return "v" + s
}

func (vs Version) IsValid([]byte) error {
	if !semver.IsValid(vs.GO()) {
		return InvalidVersionError.Errorf("version=%s", vs)
	}

	return nil
}

// IsCompatible checks if the check version is compatible to the target. The
// compatible conditions are,
// - major matches
// - minor of the check version is same or lower than the target
func (vs Version) IsCompatible(check Version) error {
	if semver.Major(vs.GO()) != semver.Major(check.GO()) {
		return VersionNotCompatibleError.Errorf("target=%s != check=%s", vs, check)
	}

	if semver.Compare(semver.MajorMinor(check.GO()), semver.MajorMinor(vs.GO())) > 0 {
		return VersionNotCompatibleError.Errorf("target=%s < check=%s", vs, check)
	}

	return nil
}
