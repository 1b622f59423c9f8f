package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"RRHHPlatform/internal/domain"
)

// HasPendingOrOpenPermit сообщает, есть ли у сотрудника папелета в ожидании
// или без зафиксированного возврата. Отклоненные и отмененные не учитываются.
func HasPendingOrOpenPermit(employeeID string, permits []domain.Permit) bool {
	for i := range permits {
		p := &permits[i]
		if p.EmpleadoID != employeeID {
			continue
		}

		status := strings.ToUpper(p.StatusName())
		if strings.Contains(status, "RECHAZADO") || strings.Contains(status, "CANCELADO") {
			continue
		}
		if strings.Contains(status, "PENDIENTE") {
			return true
		}
		if p.FechaHoraFin == nil || *p.FechaHoraFin == "" {
			return true
		}
	}
	return false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTime разбирает время папелеты: ISO с зоной или локальное без нее
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateManualReturnTime сравнивает длительность выхода с максимумом типа папелеты.
// Возвращает предупреждение или пустую строку; регистрацию возврата оно не блокирует.
// notify отражает настройку notifyMaxTimeExceeded.
func ValidateManualReturnTime(start, end string, maxHours float64, notify bool) string {
	if start == "" || end == "" || maxHours <= 0 {
		return ""
	}

	startTime, ok := ParseTime(start)
	if !ok {
		return ""
	}
	endTime, ok := ParseTime(end)
	if !ok {
		return ""
	}

	if endTime.Sub(startTime).Hours() <= maxHours {
		return ""
	}

	limit := strconv.FormatFloat(maxHours, 'f', -1, 64)
	if notify {
		return fmt.Sprintf("El tiempo excede el máximo permitido (%sh). Se enviará una notificación.", limit)
	}
	return fmt.Sprintf("ADVERTENCIA: El tiempo excede el máximo permitido (%sh).", limit)
}
