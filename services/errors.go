package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed     = errors.New("validation failed")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrSchoolNameRequired   = errors.New("school name is required")
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrInvalidOversLimit    = errors.New("overs limit must be positive")
	ErrSameTeamFixture      = errors.New("a match needs two distinct teams")
	ErrTossWinnerNotPlaying = errors.New("toss winner must be one of the playing teams")
	ErrInvalidUploadType    = errors.New("unsupported image content type")

	// Conflicts
	ErrUserEmailConflict     = errors.New("email address is already in use")
	ErrSchoolNameConflict    = errors.New("school name is already in use")
	ErrTeamNameConflict      = errors.New("team name is already in use")
	ErrSponsorNameConflict   = errors.New("sponsor name is already in use")
	ErrOfficialEmailConflict = errors.New("official email is already in use")
	ErrBracketExists         = errors.New("bracket already exists for this season")
	ErrScoringConflict       = errors.New("match was modified concurrently, retry with fresh state")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity lookups
	ErrUserNotFound      = errors.New("user not found")
	ErrSchoolNotFound    = errors.New("school not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrOfficialNotFound  = errors.New("official not found")
	ErrSponsorNotFound   = errors.New("sponsor not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrInningsNotFound   = errors.New("innings not found")
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrBracketNotFound   = errors.New("bracket not found")

	// Scoring lifecycle
	ErrMatchFrozen            = errors.New("match result is frozen")
	ErrDeliveryAlreadyFixed   = errors.New("delivery has already been corrected")
	ErrBracketTooFewQualified = errors.New("not enough completed results to seed a bracket")
)
