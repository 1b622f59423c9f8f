package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RRHHPlatform/internal/config"
	"RRHHPlatform/internal/store"
	pkgerrors "RRHHPlatform/pkg/errors"
)

var testNow = time.Date(2026, 6, 10, 15, 0, 0, 0, time.Local)

// fakeBackend один httptest сервер вместо пяти бэкендов
type fakeBackend struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	signedAs []string
	token    string
	revoked  bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": testNow.Add(8 * time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	b := &fakeBackend{token: token}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "token": b.token})
	})
	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{"user": map[string]any{
			"id":                 "1",
			"usuario":            "70123456",
			"nombre":             "Cuenta",
			"correo_electronico": "ana@example.com",
			"rol":                map[string]any{"nombre": "ADMIN"},
		}})
	})
	mux.HandleFunc("GET /usuarios/user/{dni}", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
			"id": 7, "user_id": r.PathValue("dni"), "nombre": "Ana Torres", "email": "ana.torres@example.com",
		}})
	})
	mux.HandleFunc("GET /usuarios", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{"id": 1, "user_id": "70123456", "nombre": "Ana Torres", "privilegio": 0, "dispositivo_id": 1},
				{"id": 2, "user_id": "70999888", "nombre": "Luis Paz", "privilegio": 14, "dispositivo_id": 1},
			},
			"total": 2, "page": 1, "limit": 50, "last_page": 1,
		})
	})
	mux.HandleFunc("GET /permisos/{id}", func(w http.ResponseWriter, r *http.Request) {
		permit := map[string]any{
			"id":                r.PathValue("id"),
			"empleado_id":       "70123456",
			"tipo_permiso_id":   "t1",
			"estado_id":         "e1",
			"fecha_hora_inicio": testNow.Add(-6 * time.Hour).Format("2006-01-02T15:04:05"),
			"motivo":            "Trámite",
			"tipo_permiso":      map[string]any{"id": "t1", "nombre": "Personal", "codigo": "PERSONAL", "tiempo_maximo_horas": 2},
		}
		// папелету "sup" подает супервайзер: подписывают rrhh и institucion
		if r.PathValue("id") == "sup" {
			permit["solicitante"] = map[string]any{"nombre": "Luis Paz", "cargo": "Supervisor de Operaciones"}
		}
		writeTestJSON(w, http.StatusOK, map[string]any{"data": permit})
	})
	mux.HandleFunc("PATCH /permisos/{id}/firmar", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.signedAs = append(b.signedAs, fmt.Sprint(body["tipo_firma"]))
		b.mu.Unlock()
		writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Papeleta firmada"})
	})
	mux.HandleFunc("PUT /permisos/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Papeleta actualizada"})
	})
	mux.HandleFunc("GET /permisos/{id}/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		revoked := b.revoked
		b.mu.Unlock()
		if revoked && r.Header.Get("Authorization") != "" {
			writeTestJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token revocado"})
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *fakeBackend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) SignedAs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.signedAs...)
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testEnv общее хранилище между запусками консоли, как файл ~/.rrhh
type testEnv struct {
	backend *fakeBackend
	storage store.Storage
	dir     string
}

func newTestEnv(t *testing.T) *testEnv {
	return &testEnv{
		backend: newFakeBackend(t),
		storage: store.NewMemoryStorage(),
		dir:     t.TempDir(),
	}
}

func (e *testEnv) config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Services = config.Services{
		Auth:        e.backend.URL,
		Biometric:   e.backend.URL,
		Papeletas:   e.backend.URL,
		Incidencias: e.backend.URL,
		Reportes:    e.backend.URL,
	}
	cfg.HTTP.Timeout = 5
	cfg.Output.Colors = false
	cfg.Path = filepath.Join(e.dir, "config.yaml")
	return cfg
}

// login сохраняет сессию с ролью role, как после rrhh auth login
func (e *testEnv) login(t *testing.T, role string) {
	t.Helper()
	ctx := context.Background()
	user, err := json.Marshal(map[string]any{
		"id": "1", "dni": "70123456", "nombre": "Ana Torres", "correo": "ana@example.com", "rol": role,
	})
	require.NoError(t, err)
	require.NoError(t, e.storage.Set(ctx, store.KeyToken, e.backend.token))
	require.NoError(t, e.storage.Set(ctx, store.KeyUser, string(user)))
}

type runResult struct {
	out    string
	errOut string
	err    error
}

func (e *testEnv) run(t *testing.T, args ...string) runResult {
	return e.runWith(t, e.config(), args...)
}

func (e *testEnv) runWith(t *testing.T, cfg *config.Config, args ...string) runResult {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(Options{
		In:       strings.NewReader(""),
		Out:      &out,
		Err:      &errOut,
		Config:   cfg,
		Storage:  e.storage,
		Registry: prometheus.NewRegistry(),
		Now:      func() time.Time { return testNow },
	})
	err := Execute(context.Background(), app, args)
	return runResult{out: out.String(), errOut: errOut.String(), err: err}
}

func decodeResult(t *testing.T, out string) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	return result
}

func TestVersion_JSON(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "version", "-o", "json")
	require.NoError(t, res.err)

	result := decodeResult(t, res.out)
	assert.Equal(t, true, result["success"])
	data := result["data"].(map[string]any)
	assert.Equal(t, Version, data["version"])
	assert.Empty(t, env.backend.Requests())
}

func TestVersion_Table(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, Version)
	assert.Contains(t, res.out, "Versión")
}

func TestLoginAndStatus(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "auth", "login", "--correo", "ana@example.com", "--password", "secreta")
	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "Bienvenido, Ana Torres")

	token, err := env.storage.Get(context.Background(), store.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, env.backend.token, token)

	res = env.run(t, "auth", "status", "-o", "json")
	require.NoError(t, res.err)

	data := decodeResult(t, res.out)["data"].(map[string]any)
	assert.Equal(t, true, data["autenticado"])
	assert.Equal(t, false, data["expirado"])
	user := data["usuario"].(map[string]any)
	assert.Equal(t, "ADMIN", user["rol"])
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleAdmin)

	res := env.run(t, "auth", "logout")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Sesión cerrada")

	_, err := env.storage.Get(context.Background(), store.KeyToken)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnauthorizedResponseEndsSession(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleRRHH)
	env.backend.mu.Lock()
	env.backend.revoked = true
	env.backend.mu.Unlock()

	res := env.run(t, "usuarios", "listar")
	require.Error(t, res.err)

	ctx := context.Background()
	_, err := env.storage.Get(ctx, store.KeyToken)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = env.storage.Get(ctx, store.KeyUser)
	assert.ErrorIs(t, err, store.ErrNotFound)

	res = env.run(t, "usuarios", "listar")
	require.Error(t, res.err)
	assert.Contains(t, res.errOut, "debe iniciar sesión")
}

func TestGuard_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "usuarios", "listar")
	require.Error(t, res.err)
	assert.Equal(t, pkgerrors.ErrUnauthorized, pkgerrors.CodeOf(res.err))
	assert.Contains(t, res.errOut, "debe iniciar sesión")
	assert.Empty(t, env.backend.Requests())
}

func TestGuard_RoleRefused(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleSupervisor)

	res := env.run(t, "roles", "listar")
	require.Error(t, res.err)
	assert.Equal(t, pkgerrors.ErrForbidden, pkgerrors.CodeOf(res.err))
	assert.Contains(t, res.errOut, "SUPERVISOR")
	assert.Empty(t, env.backend.Requests())
}

func TestUsersList_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleRRHH)

	res := env.run(t, "usuarios", "listar", "-o", "json")
	require.NoError(t, res.err, res.out)

	result := decodeResult(t, res.out)
	users := result["data"].([]any)
	require.Len(t, users, 2)
	assert.Equal(t, "70123456", users[0].(map[string]any)["user_id"])

	meta := result["metadata"].(map[string]any)
	assert.Equal(t, "usuarios listar", meta["command"])
	assert.Equal(t, float64(2), meta["pagination"].(map[string]any)["total"])
}

func TestUsersList_Table(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleRRHH)

	res := env.run(t, "usuarios", "listar")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Ana Torres")
	assert.Contains(t, res.out, "Luis Paz")
}

func TestPermitsNotify(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleRRHH)

	res := env.run(t, "papeletas", "notificar", "-o", "json")
	require.NoError(t, res.err)
	assert.Equal(t, false, decodeResult(t, res.out)["data"].(map[string]any)["notificar"])

	res = env.run(t, "papeletas", "notificar", "on", "-o", "json")
	require.NoError(t, res.err)
	assert.Equal(t, true, decodeResult(t, res.out)["data"].(map[string]any)["notificar"])

	stored, err := env.storage.Get(context.Background(), store.KeyNotifyMaxTimeExceeded)
	require.NoError(t, err)
	assert.Equal(t, "true", stored)

	res = env.run(t, "papeletas", "notificar", "quizas")
	require.Error(t, res.err)
	assert.Contains(t, res.errOut, "valor inválido")
}

func TestPermitReturn_WarnsWhenMaxTimeExceeded(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleAdmin)
	dest := t.TempDir()

	res := env.run(t, "papeletas", "retorno", "p1", "--salida", dest)
	require.NoError(t, res.err, res.errOut)

	assert.Contains(t, res.errOut, "ADVERTENCIA: El tiempo excede el máximo permitido (2h).")
	assert.Contains(t, res.out, "Retorno registrado")

	data, err := os.ReadFile(filepath.Join(dest, "papeleta-p1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	assert.Contains(t, env.backend.Requests(), "PUT /permisos/p1")
	assert.Contains(t, env.backend.Requests(), "GET /permisos/p1/pdf")
}

func TestPermitReturn_NotifyMessage(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleAdmin)
	require.NoError(t, env.storage.Set(context.Background(), store.KeyNotifyMaxTimeExceeded, "true"))

	res := env.run(t, "papeletas", "retorno", "p1", "--salida", t.TempDir())
	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.errOut, "Se enviará una notificación.")
}

func TestPermitSign_AvailableRole(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleRRHH)

	res := env.run(t, "papeletas", "firmar", "sup", "--firma", "ZmlybWE=")
	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "Papeleta firmada")
	assert.Equal(t, []string{"rrhh"}, env.backend.SignedAs())
}

func TestPermitSign_ExplicitRoleOutsideLayout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleSupervisor)

	for _, rol := range []string{"jefe_area", "solicitante"} {
		res := env.run(t, "papeletas", "firmar", "sup", "--rol", rol, "--firma", "ZmlybWE=")
		require.Error(t, res.err, rol)
		assert.Contains(t, res.errOut, "no corresponde a esta papeleta", rol)
	}
	assert.Empty(t, env.backend.SignedAs())
}

func TestPermitSign_ExplicitRoleNotAvailableToUser(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleSupervisor)

	res := env.run(t, "papeletas", "firmar", "sup", "--rol", "institucion", "--firma", "ZmlybWE=")
	require.Error(t, res.err)
	assert.Contains(t, res.errOut, "no puede firmar como institucion")
	assert.Empty(t, env.backend.SignedAs())
}

func TestPermitSign_AdminExplicitRole(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, RoleAdmin)

	res := env.run(t, "papeletas", "firmar", "sup", "--rol", "RRHH", "--firma", "ZmlybWE=")
	require.NoError(t, res.err, res.errOut)
	assert.Equal(t, []string{"rrhh"}, env.backend.SignedAs())
}

func TestConfigSetAndShow(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.config()

	res := env.runWith(t, cfg, "config", "set", "http.timeout", "45")
	require.NoError(t, res.err, res.errOut)
	assert.Equal(t, 45, cfg.HTTP.Timeout)

	saved, err := config.LoadConfig(cfg.Path)
	require.NoError(t, err)
	assert.Equal(t, 45, saved.HTTP.Timeout)

	res = env.runWith(t, cfg, "config", "set", "no.existe", "x")
	require.Error(t, res.err)
	assert.Contains(t, res.errOut, "clave de configuración desconocida: no.existe")

	res = env.runWith(t, cfg, "config", "ver")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "http.timeout")
	assert.Contains(t, res.out, "45")
	assert.Empty(t, env.backend.Requests())
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.config()

	res := env.runWith(t, cfg, "config", "init")
	require.NoError(t, res.err, res.errOut)
	assert.FileExists(t, cfg.Path)

	res = env.runWith(t, cfg, "config", "init")
	require.Error(t, res.err)
	assert.Contains(t, res.errOut, "el archivo ya existe")

	res = env.runWith(t, cfg, "config", "init", "--forzar")
	require.NoError(t, res.err)
}

func TestConfigKeys(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "config", "claves")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "RRHH_STORAGE_REDIS_ADDR")
	assert.Contains(t, res.out, "sync.schedule")
}
