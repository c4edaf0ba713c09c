package httpapi

import (
	"net/http"
)

// NewRouter регистрирует маршруты и оборачивает их в middleware.
func (s *Server) NewRouter() http.Handler {
	mux := http.NewServeMux()

	// Сессия
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Витрина
	mux.HandleFunc("GET /stores", s.handleListStores)
	mux.HandleFunc("GET /stores/{storeID}", s.handleGetStore)
	mux.HandleFunc("GET /products/{productID}", s.handleGetProduct)

	// Корзина
	mux.HandleFunc("GET /cart", s.handleGetCart)
	mux.HandleFunc("POST /cart/items", s.handleAddCartItem)
	mux.HandleFunc("PATCH /cart/items/{productID}", s.handleSetCartQuantity)
	mux.HandleFunc("DELETE /cart/items/{productID}", s.handleRemoveCartItem)
	mux.HandleFunc("DELETE /cart", s.handleClearCart)

	// Оформление
	mux.HandleFunc("POST /checkout", s.handleCheckout)

	// Консоль управления
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /dashboard/stores/{storeID}", s.handleDashboardStore)
	mux.HandleFunc("POST /stores", s.handleCreateStore)
	mux.HandleFunc("PUT /stores/{storeID}", s.handleUpdateStore)
	mux.HandleFunc("POST /products", s.handleCreateProduct)
	mux.HandleFunc("PUT /products/{productID}", s.handleUpdateProduct)
	mux.HandleFunc("DELETE /products/{productID}", s.handleDeleteProduct)

	// Catch-all: информация о сервисе и JSON 404 для незнакомых путей.
	mux.HandleFunc("GET /", s.handleRoot)

	return WithRequestID(WithLogging(s.logger)(mux))
}
