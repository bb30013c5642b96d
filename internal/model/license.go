package model

import "strings"

// License classifies a rights URL into a Creative Commons family.
type License string

const (
	LicenseBy        License = "by"
	LicenseBySa      License = "by-sa"
	LicenseByNd      License = "by-nd"
	LicenseByNc      License = "by-nc"
	LicenseByNcSa    License = "by-nc-sa"
	LicenseByNcNd    License = "by-nc-nd"
	LicenseZero      License = "zero"
	LicenseUndefined License = "undefined"
)

// ParseLicense maps a license URL to its Creative Commons family. URLs outside
// the known creativecommons.org namespace classify as LicenseUndefined; that is
// an explicit fallback, not an error, since publishers may use bespoke licenses.
func ParseLicense(url string) License {
	u := strings.TrimPrefix(url, "https://")
	u = strings.TrimPrefix(u, "http://")
	if strings.HasPrefix(u, "creativecommons.org/publicdomain/zero/") {
		return LicenseZero
	}
	if !strings.HasPrefix(u, "creativecommons.org/licenses/") {
		return LicenseUndefined
	}
	rest := strings.TrimPrefix(u, "creativecommons.org/licenses/")
	code, _, found := strings.Cut(rest, "/")
	if !found {
		return LicenseUndefined
	}
	switch code {
	case "by":
		return LicenseBy
	case "by-sa":
		return LicenseBySa
	case "by-nd":
		return LicenseByNd
	case "by-nc":
		return LicenseByNc
	case "by-nc-sa":
		return LicenseByNcSa
	case "by-nc-nd":
		return LicenseByNcNd
	}
	return LicenseUndefined
}

// IsOpenAccess reports whether the license belongs to a known open family.
func (l License) IsOpenAccess() bool {
	return l != LicenseUndefined
}
