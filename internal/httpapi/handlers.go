package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
)

// Server обслуживает HTTP API витрины.
type Server struct {
	catalog     *catalog.Service
	recorder    *checkout.Recorder
	sales       domain.SaleRepository
	sessions    *sessionRegistry
	idempotency domain.IdempotencyRepository
	serviceName string
	version     string
	logger      *log.Entry
}

// NewServer собирает HTTP-сервер витрины.
func NewServer(
	catalogService *catalog.Service,
	recorder *checkout.Recorder,
	sales domain.SaleRepository,
	accounts []domain.Identity,
	sessionStore domain.SessionStore,
	idempotency domain.IdempotencyRepository,
	checkoutMetrics *metrics.CheckoutMetrics,
	serviceName, version string,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	logger = logger.WithField("component", "http_server")

	return &Server{
		catalog:     catalogService,
		recorder:    recorder,
		sales:       sales,
		sessions:    newSessionRegistry(accounts, sessionStore, checkoutMetrics, logger),
		idempotency: idempotency,
		serviceName: serviceName,
		version:     version,
		logger:      logger,
	}
}

// session находит сессию запроса и возвращает её токен клиенту.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	sess := s.sessions.resolve(r)
	w.Header().Set(sessionTokenHeader, sess.token)
	return sess
}

// ---- Представления ----

type storeView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	Phone    string   `json:"phone,omitempty"`
	Image    string   `json:"image,omitempty"`
	Managers []string `json:"managers,omitempty"`
}

type productView struct {
	ID           string `json:"id"`
	StoreID      string `json:"store_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Category     string `json:"category"`
	Image        string `json:"image,omitempty"`
	Stock        int32  `json:"stock"`
}

type cartLineView struct {
	Product   productView `json:"product"`
	Quantity  int32       `json:"quantity"`
	LineTotal int64       `json:"line_total"`
}

type cartView struct {
	Lines        []cartLineView `json:"lines"`
	LineCount    int            `json:"line_count"`
	Total        int64          `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

type saleLineView struct {
	ProductID    string `json:"product_id"`
	Quantity     int32  `json:"quantity"`
	PriceAtSale  int64  `json:"price_at_sale"`
	PriceDisplay string `json:"price_display"`
}

type saleView struct {
	ID           string         `json:"id"`
	StoreID      string         `json:"store_id"`
	UserID       string         `json:"user_id"`
	Lines        []saleLineView `json:"lines"`
	TotalAmount  int64          `json:"total_amount"`
	TotalDisplay string         `json:"total_display"`
	CreatedAt    time.Time      `json:"created_at"`
}

type identityView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	ManagedStores []string `json:"managed_stores,omitempty"`
}

func toStoreView(store domain.Store) storeView {
	return storeView{
		ID:       store.ID,
		Name:     store.Name,
		Address:  store.Address,
		City:     store.City,
		Phone:    store.Phone,
		Image:    store.Image,
		Managers: store.Managers,
	}
}

func toProductView(product domain.Product) productView {
	return productView{
		ID:           product.ID,
		StoreID:      product.StoreID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		PriceDisplay: domain.FormatPrice(product.Price),
		Category:     product.Category,
		Image:        product.Image,
		Stock:        product.Stock,
	}
}

func toCartView(cart *domain.Cart) cartView {
	lines := cart.Lines()
	view := cartView{
		Lines:        make([]cartLineView, 0, len(lines)),
		LineCount:    len(lines),
		Total:        cart.Total(),
		TotalDisplay: domain.FormatPrice(cart.Total()),
	}
	for _, line := range lines {
		view.Lines = append(view.Lines, cartLineView{
			Product:   toProductView(line.Product),
			Quantity:  line.Quantity,
			LineTotal: int64(line.Quantity) * line.Product.Price,
		})
	}
	return view
}

func toSaleView(sale domain.Sale) saleView {
	view := saleView{
		ID:           sale.ID,
		StoreID:      sale.StoreID,
		UserID:       sale.UserID,
		Lines:        make([]saleLineView, 0, len(sale.Lines)),
		TotalAmount:  sale.TotalAmount,
		TotalDisplay: domain.FormatPrice(sale.TotalAmount),
		CreatedAt:    sale.CreatedAt,
	}
	for _, line := range sale.Lines {
		view.Lines = append(view.Lines, saleLineView{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			PriceAtSale:  line.PriceAtSale,
			PriceDisplay: domain.FormatPrice(line.PriceAtSale),
		})
	}
	return view
}

func toIdentityView(identity domain.Identity) identityView {
	return identityView{
		ID:            identity.ID,
		Name:          identity.Name,
		Email:         identity.Email,
		Role:          string(identity.Role),
		ManagedStores: identity.ManagedStores,
	}
}

// ---- Сервисные обработчики ----

// handleRoot отвечает информацией о сервисе; остальные пути — JSON 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteJSONError(w, http.StatusNotFound, "not found", r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service": s.serviceName,
		"version": s.version,
	})
}

// ---- Сессия ----

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	identity, err := sess.provider.Login(req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":    sess.token,
		"identity": toIdentityView(identity),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if err := sess.provider.Logout(); err != nil {
		writeDomainError(w, err)
		return
	}
	sess.cart.Clear()
	s.sessions.drop(sess.token)

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// ---- Каталог ----

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.catalog.ListStores()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]storeView, 0, len(stores))
	for _, store := range stores {
		views = append(views, toStoreView(store))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stores": views})
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	store, products, err := s.catalog.GetStore(r.PathValue("storeID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	productViews := make([]productView, 0, len(products))
	for _, product := range products {
		productViews = append(productViews, toProductView(product))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"store":    toStoreView(store),
		"products": productViews,
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.catalog.GetProduct(r.PathValue("productID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(product))
}

// ---- Корзина ----

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, toCartView(sess.cart))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	sess.cart.AddItem(product, req.Quantity)
	writeJSON(w, http.StatusOK, toCartView(sess.cart))
}

type setQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

func (s *Server) handleSetCartQuantity(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !sess.cart.SetQuantity(r.PathValue("productID"), req.Quantity) {
		WriteJSONError(w, http.StatusNotFound, "not found", "product is not in the cart")
		return
	}
	writeJSON(w, http.StatusOK, toCartView(sess.cart))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.cart.RemoveItem(r.PathValue("productID"))
	writeJSON(w, http.StatusOK, toCartView(sess.cart))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.cart.Clear()
	writeJSON(w, http.StatusOK, toCartView(sess.cart))
}

// ---- Оформление ----

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	key := r.Header.Get(idempotencyKeyHeader)
	if key != "" && s.idempotency != nil {
		body, _ := io.ReadAll(r.Body)
		hash := requestHash(r.Method, r.URL.Path, sess.token, body)
		if !s.beginIdempotent(w, key, hash) {
			return
		}
	}

	sales, err := s.recorder.Checkout(sess.provider.Current(), sess.cart)
	if err != nil {
		if key != "" && s.idempotency != nil {
			status, payload := errorResponse(err)
			s.finishIdempotent(key, false, payload, status)
		}
		writeDomainError(w, err)
		return
	}

	views := make([]saleView, 0, len(sales))
	for _, sale := range sales {
		views = append(views, toSaleView(sale))
	}
	response := map[string]interface{}{"sales": views}

	if key != "" && s.idempotency != nil {
		payload, marshalErr := json.Marshal(response)
		if marshalErr == nil {
			s.finishIdempotent(key, true, payload, http.StatusCreated)
		}
	}
	writeJSON(w, http.StatusCreated, response)
}

// errorResponse собирает сохранённый JSON-ответ для повторов неудачных запросов.
func errorResponse(err error) (int, []byte) {
	rec := &responseBuffer{}
	writeDomainError(rec, err)
	return rec.status, rec.body
}

// responseBuffer — минимальный http.ResponseWriter для записи ответа в память.
type responseBuffer struct {
	header http.Header
	status int
	body   []byte
}

func (r *responseBuffer) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

func (r *responseBuffer) WriteHeader(code int) { r.status = code }

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.body = append(r.body, b...)
	return len(b), nil
}

// ---- Консоль управления ----

type dashboardStoreView struct {
	Store      storeView `json:"store"`
	SalesCount int       `json:"sales_count"`
	Revenue    int64     `json:"revenue"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	caps := sess.provider.Capabilities()
	if sess.provider.Current().IsZero() {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}
	if !caps.CanViewDashboard() {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}

	stores, err := s.catalog.ListStores()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]dashboardStoreView, 0, len(stores))
	for _, store := range stores {
		if !caps.CanManage(store.ID) {
			continue
		}
		sales, err := s.sales.ListByStore(store.ID, 0)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var revenue int64
		for _, sale := range sales {
			revenue += sale.TotalAmount
		}
		views = append(views, dashboardStoreView{
			Store:      toStoreView(store),
			SalesCount: len(sales),
			Revenue:    revenue,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stores": views})
}

func (s *Server) handleDashboardStore(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	storeID := r.PathValue("storeID")

	if sess.provider.Current().IsZero() {
		writeDomainError(w, domain.ErrNotAuthenticated)
		return
	}
	if !sess.provider.Capabilities().CanManage(storeID) {
		writeDomainError(w, domain.ErrUnauthorized)
		return
	}

	store, products, err := s.catalog.GetStore(storeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	sales, err := s.sales.ListByStore(storeID, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	activity, err := s.catalog.Activity(storeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	productViews := make([]productView, 0, len(products))
	for _, product := range products {
		productViews = append(productViews, toProductView(product))
	}
	saleViews := make([]saleView, 0, len(sales))
	for _, sale := range sales {
		saleViews = append(saleViews, toSaleView(sale))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"store":    toStoreView(store),
		"products": productViews,
		"sales":    saleViews,
		"activity": activity,
	})
}

// ---- Управление каталогом ----

type storeRequest struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	Phone    string   `json:"phone"`
	Image    string   `json:"image"`
	Managers []string `json:"managers"`
}

func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	store, err := s.catalog.CreateStore(sess.provider.Capabilities(), catalog.StoreInput{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Image:    req.Image,
		Managers: req.Managers,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStoreView(store))
}

func (s *Server) handleUpdateStore(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	store, err := s.catalog.UpdateStore(sess.provider.Capabilities(), r.PathValue("storeID"), catalog.StoreInput{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Phone:    req.Phone,
		Image:    req.Image,
		Managers: req.Managers,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoreView(store))
}

type productRequest struct {
	StoreID     string `json:"store_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Stock       int32  `json:"stock"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := s.catalog.CreateProduct(sess.provider.Capabilities(), catalog.ProductInput{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductView(product))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	product, err := s.catalog.UpdateProduct(sess.provider.Capabilities(), r.PathValue("productID"), catalog.ProductInput{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(product))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	if err := s.catalog.DeleteProduct(sess.provider.Capabilities(), r.PathValue("productID")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
