package domain

// Device биометрическое устройство
type Device struct {
	ID                 int    `json:"id"`
	Nombre             string `json:"nombre"`
	IPAddress          string `json:"ip_address"`
	Puerto             int    `json:"puerto"`
	Ubicacion          string `json:"ubicacion,omitempty"`
	Activo             bool   `json:"activo"`
	FechaCreacion      string `json:"fecha_creacion,omitempty"`
	FechaActualizacion string `json:"fecha_actualizacion,omitempty"`
}

// DeviceRequest создание и обновление устройства
type DeviceRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	IPAddress *string `json:"ip_address,omitempty" validate:"omitempty,ip"`
	Puerto    *int    `json:"puerto,omitempty" validate:"omitempty,min=1,max=65535"`
	Ubicacion *string `json:"ubicacion,omitempty"`
	Password  *int    `json:"password,omitempty"`
	Timeout   *int    `json:"timeout,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// DeviceConnectionInfo сведения об устройстве при проверке связи
type DeviceConnectionInfo struct {
	SerialNumber    string `json:"serial_number"`
	FirmwareVersion string `json:"firmware_version"`
	Platform        string `json:"platform"`
	IPAddress       string `json:"ip_address"`
	Puerto          int    `json:"puerto"`
	HoraDispositivo string `json:"hora_dispositivo"`
}

// TestConnectionResponse результат проверки связи
type TestConnectionResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Info    *DeviceConnectionInfo `json:"info,omitempty"`
}
