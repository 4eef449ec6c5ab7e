package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrVesselNotFound     = errors.New("vessel not found")
	ErrContainerNotFound  = errors.New("container not found")
	ErrTariffNotFound     = errors.New("tariff not found")
	ErrInvalidVessel      = errors.New("invalid vessel id")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPeriod      = errors.New("invalid reporting period")
	ErrInvalidAdjustment  = errors.New("invalid price adjustment")
	ErrDuplicateTariff    = errors.New("tariff id already exists")
	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrUploadFailed       = errors.New("file upload to storage failed")
)
