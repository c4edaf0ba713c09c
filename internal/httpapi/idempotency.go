package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// idempotencyKeyHeader несёт клиентский ключ идемпотентности оформления.
const idempotencyKeyHeader = "Idempotency-Key"

// defaultIdempotencyTTL — время жизни записи до очистки воркером.
const defaultIdempotencyTTL = 24 * time.Hour

// requestHash строит отпечаток запроса. Один ключ с другим телом или
// от другой сессии считается конфликтом, а не повтором.
func requestHash(method, path, token string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(token))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// beginIdempotent регистрирует ключ идемпотентности. Возвращает true,
// если обработку нужно продолжать; false, если ответ уже записан.
func (s *Server) beginIdempotent(w http.ResponseWriter, key, hash string) bool {
	_, err := s.idempotency.CreateProcessing(key, hash, time.Now().UTC().Add(defaultIdempotencyTTL))
	if err == nil {
		return true
	}

	if errors.Is(err, domain.ErrIdempotencyHashMismatch) {
		WriteJSONError(w, http.StatusConflict, "idempotency key reused with different request", "")
		return false
	}
	if !errors.Is(err, domain.ErrIdempotencyKeyAlreadyExists) {
		writeDomainError(w, err)
		return false
	}

	record, getErr := s.idempotency.Get(key)
	if getErr != nil {
		writeDomainError(w, getErr)
		return false
	}

	switch record.Status {
	case domain.IdempotencyStatusProcessing:
		WriteJSONError(w, http.StatusConflict, "request is being processed", "")
	default:
		// Повтор завершённого запроса: отдаём сохранённый ответ как есть.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(record.HTTPStatus)
		_, _ = w.Write(record.ResponseBody)
	}
	return false
}

// finishIdempotent сохраняет итог обработки для будущих повторов.
func (s *Server) finishIdempotent(key string, ok bool, responseBody []byte, status int) {
	var err error
	if ok {
		err = s.idempotency.MarkDone(key, responseBody, status)
	} else {
		err = s.idempotency.MarkFailed(key, responseBody, status)
	}
	if err != nil {
		s.logger.WithError(err).WithField("idempotency_key", key).Warn("Не удалось сохранить итог идемпотентного запроса")
	}
}
