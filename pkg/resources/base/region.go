// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import (
	"regexp"
	"strings"
)

// regionSuffixPattern matches trailing digits with optional hyphen prefix.
// Examples: "1" in "DE1", "7" in "GRA7", "-1" in "US-EAST-VA-1"
var regionSuffixPattern = regexp.MustCompile(`-?\d+$`)

// zoneSuffixPattern matches the availability zone letter of a zone name.
// Examples: "-a" in "GRA11-a", "-c" in "EU-WEST-PAR-c"
var zoneSuffixPattern = regexp.MustCompile(`-[a-z]$`)

// DeriveShortRegion converts an OpenStack region code to an OVH Cloud region code.
//
// OVH uses two different region naming conventions:
//   - OpenStack APIs (compute, network): Long codes like DE1, GRA7, BHS5
//   - OVH Cloud APIs (storage, database): Short codes like DE, GRA, BHS
//
// Examples:
//   - DE1 → DE
//   - GRA7, GRA9, GRA11 → GRA
//   - US-EAST-VA-1 → US-EAST-VA
//   - DE → DE (already short, unchanged)
func DeriveShortRegion(region string) string {
	if region == "" {
		return ""
	}
	return regionSuffixPattern.ReplaceAllString(region, "")
}

// RegionOfZone returns the region a zone belongs to.
//
// Examples:
//   - GRA11-a → GRA11
//   - EU-WEST-PAR-c → EU-WEST-PAR
//   - GRA11 → GRA11 (not a zone name, unchanged)
func RegionOfZone(zone string) string {
	zone = strings.TrimSpace(zone)
	return zoneSuffixPattern.ReplaceAllString(zone, "")
}
