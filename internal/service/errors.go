package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLabRequired is returned when an operation needs an active lab and none is selected
	ErrLabRequired = errors.New("select a lab first")
)

// Authentication and account errors
var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrLabSuspended         = errors.New("lab is suspended")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrPasswordUnchanged    = errors.New("new password must differ from the current password")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("a user with this email already exists")
	ErrCannotDeactivateSelf = errors.New("you cannot deactivate your own account")
)

// Lab and catalog errors
var (
	ErrLabNotFound              = errors.New("lab not found")
	ErrDuplicateLab             = errors.New("a lab with this name already exists")
	ErrFluorochromeNotFound     = errors.New("fluorochrome not found")
	ErrDuplicateFluorochrome    = errors.New("a fluorochrome with this name already exists")
	ErrFluorochromeInUse        = errors.New("fluorochrome is used by antibodies")
	ErrAntibodyNotFound         = errors.New("antibody not found")
	ErrAntibodyInactive         = errors.New("antibody is archived")
	ErrLotNotFound              = errors.New("lot not found")
	ErrDuplicateLot             = errors.New("this antibody already has a lot with that number")
	ErrLotArchived              = errors.New("lot is archived")
	ErrQCDocumentRequired       = errors.New("upload a QC document before approving this lot")
	ErrQCNotApproved            = errors.New("lot is not QC approved")
	ErrInvalidExpirationDate    = errors.New("expiration date must be YYYY-MM-DD")
	ErrDocumentNotFound         = errors.New("document not found")
	ErrDocumentTooLarge         = errors.New("document exceeds the upload size limit")
	ErrTicketNotFound           = errors.New("ticket not found")
	ErrInvalidDateRange         = errors.New("dates must be YYYY-MM, YYYY-MM-DD or RFC3339 and from must not be after to")
	ErrStorageDisabled          = errors.New("storage is disabled for this lab")
	ErrDocumentStoreUnavailable = errors.New("document storage is not configured")
)

// Vial and storage errors
var (
	ErrVialNotFound        = errors.New("vial not found")
	ErrVialNotSealed       = errors.New("only sealed vials can be opened")
	ErrVialNotOpened       = errors.New("only opened vials can be returned to storage")
	ErrVialNotInUse        = errors.New("vial is depleted or archived")
	ErrCellMismatch        = errors.New("vial is not in the scanned cell")
	ErrStorageUnitNotFound = errors.New("storage unit not found")
	ErrCellNotFound        = errors.New("storage cell not found")
	ErrCellNotInUnit       = errors.New("cell does not belong to the target storage unit")
	ErrCellOccupied        = errors.New("storage cell is occupied")
	ErrInsufficientSpace   = errors.New("not enough free cells in the storage unit")
	ErrCellCountMismatch   = errors.New("pick exactly one cell per vial")
	ErrUnitNotEmpty        = errors.New("storage unit still holds vials")
	ErrResizeOccupied      = errors.New("resize would remove cells that hold vials")
	ErrUnitInactive        = errors.New("storage unit is inactive")
)
