package httpapi

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
)

// sessionTokenHeader передаёт токен сессии между клиентом и сервером.
const sessionTokenHeader = "X-Session-Token"

// session связывает токен с identity-провайдером и корзиной. Корзина
// живёт только в памяти сессии, identity переживает перезапуск через
// SessionStore провайдера.
type session struct {
	token    string
	provider *auth.Provider
	cart     *domain.Cart
}

// sessionRegistry выдаёт и находит сессии по токену.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	accounts []domain.Identity
	store    domain.SessionStore
	metrics  *metrics.CheckoutMetrics
	logger   *log.Entry
}

func newSessionRegistry(accounts []domain.Identity, store domain.SessionStore, checkoutMetrics *metrics.CheckoutMetrics, logger *log.Entry) *sessionRegistry {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &sessionRegistry{
		sessions: make(map[string]*session),
		accounts: accounts,
		store:    store,
		metrics:  checkoutMetrics,
		logger:   logger.WithField("component", "session_registry"),
	}
}

// slotKey строит ключ слота identity в SessionStore.
func slotKey(token string) string {
	return "session:" + token
}

// resolve возвращает сессию запроса. Для незнакомого токена создаётся
// новая сессия с тем же токеном: если в SessionStore остался снимок
// identity, провайдер восстановит её.
func (r *sessionRegistry) resolve(req *http.Request) *session {
	token := req.Header.Get(sessionTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[token]; ok {
		return s
	}

	s := &session{
		token:    token,
		provider: auth.NewProvider(r.accounts, r.store, slotKey(token), r.logger),
		cart:     domain.NewCart(),
	}
	r.sessions[token] = s
	if r.metrics != nil {
		r.metrics.RecordSessionOpened()
	}
	return s
}

// drop забывает сессию после выхода пользователя.
func (r *sessionRegistry) drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return
	}
	delete(r.sessions, token)
	if r.metrics != nil {
		r.metrics.RecordSessionClosed()
	}
}
