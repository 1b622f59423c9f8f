// Package session хранит текущего пользователя консоли: токен и профиль
// в долговременном хранилище и их копию в памяти процесса.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"RRHHPlatform/internal/client"
	"RRHHPlatform/internal/domain"
	"RRHHPlatform/internal/store"
	pkgerrors "RRHHPlatform/pkg/errors"
	"RRHHPlatform/pkg/logger"
)

// ErrNoToken в хранилище нет токена
var ErrNoToken = pkgerrors.New(pkgerrors.ErrUnauthorized, "no hay sesión iniciada")

// AuthSource сервис авторизации
type AuthSource interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResponse, error)
	Profile(ctx context.Context) (*domain.Profile, error)
}

// DirectorySource справочник сотрудников, из которого берется реальное имя
type DirectorySource interface {
	GetByUserID(ctx context.Context, dni string) (*domain.BiometricUser, error)
}

// Store сессия пользователя
type Store struct {
	storage   store.Storage
	auth      AuthSource
	directory DirectorySource
	logger    logger.Logger

	mu            sync.RWMutex
	user          *domain.Profile
	authenticated bool
	loading       bool
}

// NewStore создает сессию поверх хранилища
func NewStore(storage store.Storage, auth AuthSource, directory DirectorySource, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		storage:   storage,
		auth:      auth,
		directory: directory,
		logger:    log.With(logger.String("component", "session")),
	}
}

// Init восстанавливает сессию из хранилища. Нужны и токен, и профиль;
// профиль, который не удается разобрать, завершает сессию.
func (s *Store) Init(ctx context.Context) {
	token, err := store.GetOptional(ctx, s.storage, store.KeyToken)
	if err != nil {
		s.logger.Warn("Failed to read token", logger.Error(err))
		return
	}
	stored, err := store.GetOptional(ctx, s.storage, store.KeyUser)
	if err != nil {
		s.logger.Warn("Failed to read stored user", logger.Error(err))
		return
	}
	if token == "" || stored == "" {
		return
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(stored), &raw); err != nil || raw == nil {
		s.logger.Error("Stored user is corrupt, logging out", logger.Error(err))
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = profileFromStored(raw)
	s.authenticated = true
}

// FetchProfile загружает профиль из сервиса авторизации и дополняет его
// именем и почтой из справочника сотрудников. Ошибка справочника не прерывает загрузку.
func (s *Store) FetchProfile(ctx context.Context) (*domain.Profile, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	profile, err := s.auth.Profile(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch profile", logger.Error(err), logger.CtxField(ctx))
		return nil, err
	}

	if profile.DNI != "" && s.directory != nil {
		person, err := s.directory.GetByUserID(ctx, profile.DNI)
		switch {
		case err != nil:
			s.logger.Warn("Could not fetch employee details",
				logger.String("dni", profile.DNI),
				logger.Error(err))
		case person != nil && person.Nombre != "":
			profile.Nombre = person.Nombre
			if person.Email != "" {
				profile.Correo = person.Email
			}
		}
	}

	s.mu.Lock()
	s.user = profile
	s.authenticated = true
	s.mu.Unlock()

	if err := s.persist(ctx, profile); err != nil {
		s.logger.Warn("Failed to persist user", logger.Error(err))
	}

	return cloneProfile(profile), nil
}

// Login выполняет вход, сохраняет токен и загружает профиль
func (s *Store) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.Profile, error) {
	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		message := resp.Message
		if message == "" {
			message = "el servidor no devolvió un token"
		}
		return nil, pkgerrors.New(pkgerrors.ErrUnauthorized, message)
	}

	if err := s.storage.Set(ctx, store.KeyToken, resp.Token); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrInternal, "no se pudo guardar el token")
	}

	s.logger.Info("Logged in", logger.String("correo", creds.Correo))

	return s.FetchProfile(ctx)
}

// Logout очищает сессию в памяти и в хранилище. Запросов к серверу нет.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	for _, key := range []string{store.KeyUser, store.KeyToken} {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.logger.Warn("Failed to remove key", logger.String("key", key), logger.Error(err))
		}
	}
}

// Token возвращает сохраненный токен
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := store.GetOptional(ctx, s.storage, store.KeyToken)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// HasToken сообщает, сохранен ли токен
func (s *Store) HasToken(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

// User возвращает копию профиля или nil
func (s *Store) User() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.user)
}

// Role возвращает плоское имя роли текущего пользователя
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Rol
}

// IsAuthenticated сообщает, восстановлена или загружена ли сессия
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Loading сообщает, идет ли загрузка профиля
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// persist сохраняет профиль: исходный объект пользователя, поверх него нормализованные поля
func (s *Store) persist(ctx context.Context, p *domain.Profile) error {
	merged := make(map[string]any, len(p.Raw)+6)
	for k, v := range p.Raw {
		merged[k] = v
	}
	merged["id"] = p.ID
	merged["dni"] = p.DNI
	merged["nombre"] = p.Nombre
	merged["correo"] = p.Correo
	merged["rol"] = p.Rol
	if p.Cargo != "" {
		merged["cargo"] = p.Cargo
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, store.KeyUser, string(data))
}

// profileFromStored читает профиль, сохраненный persist
func profileFromStored(raw map[string]any) *domain.Profile {
	p := client.NormalizeProfile(raw)
	if dni, ok := raw["dni"].(string); ok && dni != "" {
		p.DNI = dni
	}
	if correo, ok := raw["correo"].(string); ok && correo != "" {
		p.Correo = correo
	}
	return p
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Raw != nil {
		c.Raw = make(map[string]any, len(p.Raw))
		for k, v := range p.Raw {
			c.Raw[k] = v
		}
	}
	return &c
}

// Claims полезная нагрузка JWT без проверки подписи
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
	Raw       jwt.MapClaims
}

// Expired сообщает, истек ли срок действия токена
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// TokenClaims разбирает сохраненный токен без проверки подписи.
// Используется только для вывода сведений о сессии.
func (s *Store) TokenClaims(ctx context.Context) (*Claims, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return ParseClaims(token)
}

// ParseClaims разбирает JWT без проверки подписи
func ParseClaims(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrValidation, "token con formato inválido")
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, pkgerrors.Wrap(errors.New("unexpected claims type"), pkgerrors.ErrValidation, "token con formato inválido")
	}

	claims := &Claims{Raw: mc}
	claims.Subject, _ = mc.GetSubject()
	claims.Issuer, _ = mc.GetIssuer()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		claims.ExpiresAt = &t
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		claims.IssuedAt = &t
	}
	return claims, nil
}
