package reconcile

import (
	"regexp"
	"strings"

	"portops/internal/domain"
)

// containerNoPattern is an ISO 6346 shaped id: owner+category letters then 7 digits.
var containerNoPattern = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)

// separators are stripped before matching, so "WHSU 202400-1" still matches.
var separators = regexp.MustCompile(`[\s.\-]`)

// ClassifyUnit decides whether id denotes a container or a road vehicle.
// Ids containing "/" are vehicles (truck/trailer plate pairs). Anything that
// is not container-shaped falls through to VEHICLE.
func ClassifyUnit(id string) domain.UnitType {
	clean := strings.ToUpper(strings.TrimSpace(id))
	if strings.Contains(clean, "/") {
		return domain.UnitTypeVehicle
	}
	if containerNoPattern.MatchString(separators.ReplaceAllString(clean, "")) {
		return domain.UnitTypeContainer
	}
	return domain.UnitTypeVehicle
}
