package domain

import "errors"

var (
	ErrFacilityNotFound        = errors.New("facility not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrActivityNotFound        = errors.New("activity not found")
	ErrPlanNotFound            = errors.New("plan not found")
	ErrRoutineNotFound         = errors.New("routine not found")
	ErrNutritionalPlanNotFound = errors.New("nutritional plan not found")
	ErrDiaryNotFound           = errors.New("diary not found")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
)
