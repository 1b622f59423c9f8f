package client

import (
	"RRHHPlatform/internal/config"
	"RRHHPlatform/internal/store"
)

// Имена бэкендов; используются в логах, метриках и спанах
const (
	ServiceAuth        = "auth"
	ServiceBiometric   = "biometric"
	ServicePapeletas   = "papeletas"
	ServiceIncidencias = "incidencias"
	ServiceReportes    = "reportes"
)

// Registry набор клиентов пяти бэкендов. Создается один раз и дальше не меняется.
type Registry struct {
	auth        *API
	biometric   *API
	papeletas   *API
	incidencias *API
	reportes    *API

	authClient  *AuthClient
	roles       *RolesClient
	users       *UsersClient
	attendance  *AttendanceClient
	devices     *DevicesClient
	schedules   *SchedulesClient
	departments *DepartmentsClient
	permits     *PermitsClient
	incidents   *IncidentsClient
	reports     *ReportsClient
}

// NewRegistry создает клиенты всех бэкендов. Все они читают токен из одного storage.
func NewRegistry(services config.Services, storage store.Storage, opts ...Option) *Registry {
	r := &Registry{
		auth:        NewAPI(ServiceAuth, services.Auth, storage, opts...),
		biometric:   NewAPI(ServiceBiometric, services.Biometric, storage, opts...),
		papeletas:   NewAPI(ServicePapeletas, services.Papeletas, storage, opts...),
		incidencias: NewAPI(ServiceIncidencias, services.Incidencias, storage, opts...),
		reportes:    NewAPI(ServiceReportes, services.Reportes, storage, opts...),
	}

	r.authClient = NewAuthClient(r.auth)
	r.roles = NewRolesClient(r.auth)
	r.users = NewUsersClient(r.biometric)
	r.attendance = NewAttendanceClient(r.biometric)
	r.devices = NewDevicesClient(r.biometric)
	r.schedules = NewSchedulesClient(r.biometric)
	r.departments = NewDepartmentsClient(r.biometric)
	r.permits = NewPermitsClient(r.papeletas)
	r.incidents = NewIncidentsClient(r.incidencias)
	r.reports = NewReportsClient(r.reportes)

	return r
}

// APIs возвращает клиенты бэкендов по имени
func (r *Registry) APIs() map[string]*API {
	return map[string]*API{
		ServiceAuth:        r.auth,
		ServiceBiometric:   r.biometric,
		ServicePapeletas:   r.papeletas,
		ServiceIncidencias: r.incidencias,
		ServiceReportes:    r.reportes,
	}
}

func (r *Registry) Auth() *AuthClient               { return r.authClient }
func (r *Registry) Roles() *RolesClient             { return r.roles }
func (r *Registry) Users() *UsersClient             { return r.users }
func (r *Registry) Attendance() *AttendanceClient   { return r.attendance }
func (r *Registry) Devices() *DevicesClient         { return r.devices }
func (r *Registry) Schedules() *SchedulesClient     { return r.schedules }
func (r *Registry) Departments() *DepartmentsClient { return r.departments }
func (r *Registry) Permits() *PermitsClient         { return r.permits }
func (r *Registry) Incidents() *IncidentsClient     { return r.incidents }
func (r *Registry) Reports() *ReportsClient         { return r.reports }
