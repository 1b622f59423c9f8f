package syncd

import (
	"fmt"

	pkgerrors "RRHHPlatform/pkg/errors"
)

var (
	// ErrAlreadyRunning проход уже выполняется
	ErrAlreadyRunning = pkgerrors.New(pkgerrors.ErrConflict, "la sincronización ya está en curso")
	// ErrPartialFailure часть устройств не синхронизировалась
	ErrPartialFailure = pkgerrors.New(pkgerrors.ErrUnavailable, "algunos dispositivos no se sincronizaron")
)

// DeviceError устройство ответило success=false
type DeviceError struct {
	DeviceID int
	Message  string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("dispositivo %d: %s", e.DeviceID, e.Message)
}
