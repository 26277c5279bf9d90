package domain

// Error is a business-rule failure carrying a machine-readable code next to
// the human-readable message. Instances below are compared by identity.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidEntryTime     = &Error{Code: "invalid_entry_time", Message: "entry time is in the past"}
	ErrInvalidExitTime      = &Error{Code: "invalid_exit_time", Message: "exit time precedes entry time"}
	ErrInvalidDuration      = &Error{Code: "invalid_duration", Message: "stay duration is negative"}
	ErrDuplicateEntry       = &Error{Code: "duplicate_entry", Message: "vehicle with this plate is already parked"}
	ErrGarageFull           = &Error{Code: "garage_full", Message: "no sector has spare capacity"}
	ErrDataInconsistency    = &Error{Code: "data_inconsistency", Message: "occupancy state is corrupted"}
	ErrPlateNotFound        = &Error{Code: "plate_not_found", Message: "no parked vehicle found for plate"}
	ErrSpaceNotFound        = &Error{Code: "space_not_found", Message: "no space matches the reported coordinates"}
	ErrSpaceConflict        = &Error{Code: "space_conflict", Message: "space is occupied by another vehicle"}
	ErrSectorNotFound       = &Error{Code: "sector_not_found", Message: "sector not found"}
	ErrSectorAlreadyExists  = &Error{Code: "sector_already_exists", Message: "sector already exists"}
	ErrSectorNameRequired   = &Error{Code: "sector_name_required", Message: "sector name is required"}
	ErrInvalidCapacity      = &Error{Code: "invalid_capacity", Message: "max capacity must be at least 1"}
	ErrInvalidBasePrice     = &Error{Code: "invalid_base_price", Message: "base price must be positive"}
	ErrLicensePlateRequired = &Error{Code: "license_plate_required", Message: "license plate is required"}
	ErrSpaceAlreadyExists   = &Error{Code: "space_already_exists", Message: "space already exists"}
)
