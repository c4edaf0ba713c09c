package auth

import (
	"encoding/json"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// snapshotSchemaVersion версионирует формат сохранённой identity. Снимки
// с незнакомой версией отбрасываются, сессия начинается заново.
const snapshotSchemaVersion = 1

// identitySnapshot — сериализованное представление identity в SessionStore.
type identitySnapshot struct {
	SchemaVersion int              `json:"schema_version"`
	Identity      identityDocument `json:"identity"`
}

type identityDocument struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	ManagedStores []string `json:"managed_stores,omitempty"`
}

// Provider отвечает за вход, выход и текущую identity сессии.
// Identity переживает перезапуск через SessionStore.
type Provider struct {
	mu       sync.RWMutex
	accounts []domain.Identity
	store    domain.SessionStore
	slotKey  string
	current  domain.Identity
	logger   *log.Entry
}

// NewProvider создаёт провайдер и восстанавливает identity из SessionStore.
// accounts — справочник известных учёток, slotKey — ключ слота сессии.
func NewProvider(accounts []domain.Identity, store domain.SessionStore, slotKey string, logger *log.Entry) *Provider {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	p := &Provider{
		accounts: append([]domain.Identity(nil), accounts...),
		store:    store,
		slotKey:  slotKey,
		logger:   logger.WithField("component", "auth_provider"),
	}
	p.restore()
	return p
}

// Login ищет учётку по email и делает её текущей identity сессии.
// Пароль сейчас не проверяется, параметр оставлен для совместимости формы.
func (p *Provider) Login(email, password string) (domain.Identity, error) {
	_ = password

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, account := range p.accounts {
		if strings.ToLower(account.Email) != email {
			continue
		}
		p.current = account
		p.persist(account)
		p.logger.WithFields(log.Fields{
			"user_id": account.ID,
			"role":    account.Role,
		}).Info("Пользователь вошёл в систему")
		return account, nil
	}

	p.logger.WithField("email", email).Warn("Попытка входа с неизвестным email")
	return domain.Identity{}, domain.ErrInvalidCredentials
}

// Logout сбрасывает текущую identity и очищает слот сессии.
func (p *Provider) Logout() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current.IsZero() {
		return nil
	}

	userID := p.current.ID
	p.current = domain.Identity{}

	if p.store != nil {
		if err := p.store.Delete(p.slotKey); err != nil {
			p.logger.WithError(err).Warn("Не удалось очистить слот сессии")
			return err
		}
	}

	p.logger.WithField("user_id", userID).Info("Пользователь вышел из системы")
	return nil
}

// Current возвращает identity сессии; zero value, если никто не вошёл.
func (p *Provider) Current() domain.Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Capabilities возвращает набор разрешений текущей identity.
func (p *Provider) Capabilities() domain.Capabilities {
	return domain.CapabilitiesFor(p.Current())
}

// IsAuthenticated сообщает, есть ли у сессии текущая identity.
func (p *Provider) IsAuthenticated() bool {
	return !p.Current().IsZero()
}

// IsAdmin проверяет роль администратора у текущей identity.
func (p *Provider) IsAdmin() bool { return p.Current().IsAdmin() }

// IsManager проверяет роль менеджера у текущей identity.
func (p *Provider) IsManager() bool { return p.Current().IsManager() }

// CanManageStore отвечает, может ли текущая identity управлять магазином.
func (p *Provider) CanManageStore(storeID string) bool {
	return p.Current().CanManageStore(storeID)
}

// persist сохраняет снимок identity в SessionStore. Ошибка записи не
// прерывает вход, сессия продолжает жить в памяти.
func (p *Provider) persist(identity domain.Identity) {
	if p.store == nil {
		return
	}

	snapshot := identitySnapshot{
		SchemaVersion: snapshotSchemaVersion,
		Identity: identityDocument{
			ID:            identity.ID,
			Name:          identity.Name,
			Email:         identity.Email,
			Role:          string(identity.Role),
			ManagedStores: identity.ManagedStores,
		},
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		p.logger.WithError(err).Error("Не удалось сериализовать снимок identity")
		return
	}
	if err := p.store.Put(p.slotKey, data); err != nil {
		p.logger.WithError(err).Warn("Не удалось сохранить снимок identity")
	}
}

// restore читает слот сессии и восстанавливает identity, если снимок валиден.
func (p *Provider) restore() {
	if p.store == nil {
		return
	}

	data, ok, err := p.store.Get(p.slotKey)
	if err != nil {
		p.logger.WithError(err).Warn("Не удалось прочитать слот сессии")
		return
	}
	if !ok {
		return
	}

	var snapshot identitySnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		p.logger.WithError(err).Warn("Повреждённый снимок identity, сессия сброшена")
		return
	}
	if snapshot.SchemaVersion != snapshotSchemaVersion {
		p.logger.WithField("schema_version", snapshot.SchemaVersion).
			Warn("Незнакомая версия снимка identity, сессия сброшена")
		return
	}

	p.current = domain.Identity{
		ID:            snapshot.Identity.ID,
		Name:          snapshot.Identity.Name,
		Email:         snapshot.Identity.Email,
		Role:          domain.Role(snapshot.Identity.Role),
		ManagedStores: snapshot.Identity.ManagedStores,
	}

	p.logger.WithField("user_id", p.current.ID).Info("Identity восстановлена из сохранённой сессии")
}
