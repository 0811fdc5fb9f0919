package constants

import (
	"database/sql/driver"
	"fmt"
)

// ServiceType mirrors the Postgres ENUM 'service_type'
type ServiceType string

// ServiceTypeCatalogVersion identifies the catalog revision served to
// clients. Bump when the set below changes.
const ServiceTypeCatalogVersion = "2025.2"

// ServiceTypeCatalog is the single canonical set of ground services a pilot
// can request. Every surface (validation, listings, clients) reads this one
// list; there are deliberately no per-view copies.
var ServiceTypeCatalog = []ServiceType{
	"fuel",
	"fuel_full_service",
	"gpu_connection",
	"apu_connection",
	"air_conditioning_ground",
	"baggage_loading",
	"baggage_unloading",
	"cargo_loading",
	"cargo_unloading",
	"catering_full_service",
	"catering_beverage_only",
	"catering_meal_service",
	"maintenance_line",
	"maintenance_inspection",
	"cleaning_cabin_full",
	"cleaning_cabin_light",
	"cleaning_exterior",
	"pushback",
	"pushback_with_start",
	"towing_to_gate",
	"towing_to_maintenance",
	"security_check",
	"passenger_boarding",
	"passenger_deboarding",
	"passenger_special_assistance",
	"de_icing",
	"anti_icing",
	"lavatory_service",
	"water_service_potable",
	"stairs_positioning",
	"stairs_removal",
	"jetbridge_connection",
	"jetbridge_disconnection",
	"marshalling_arrival",
	"marshalling_departure",
	"ground_transport_crew",
	"ground_transport_passenger",
	"wheelchair_assistance",
	"engine_start_assistance",
	"pre_flight_inspection",
	"post_flight_inspection",
	"cabin_service_supplies",
	"galley_restocking",
	"ramp_coordination",
}

var serviceTypeSet = func() map[ServiceType]struct{} {
	set := make(map[ServiceType]struct{}, len(ServiceTypeCatalog))
	for _, st := range ServiceTypeCatalog {
		set[st] = struct{}{}
	}
	return set
}()

func (t ServiceType) String() string { return string(t) }

// IsValid reports whether t is a member of the catalog
func (t ServiceType) IsValid() bool {
	_, ok := serviceTypeSet[t]
	return ok
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (t *ServiceType) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = ServiceType(v)
	case []byte:
		*t = ServiceType(v)
	default:
		return fmt.Errorf("ServiceType: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (t ServiceType) Value() (driver.Value, error) { return string(t), nil }
