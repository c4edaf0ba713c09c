package domain

// Role определяет роль пользователя в витрине.
type Role string

const (
	// RoleAdmin — администратор платформы, управляет любыми магазинами.
	RoleAdmin Role = "admin"
	// RoleManager — менеджер, управляет только магазинами из своего набора.
	RoleManager Role = "manager"
	// RoleCustomer — покупатель, оформляет заказы через корзину.
	RoleCustomer Role = "customer"
)

// Identity описывает аутентифицированного пользователя и его права.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  Role
	// ManagedStores заполняется только для менеджеров.
	ManagedStores []string
}

// IsZero сообщает, что identity не установлена (нет текущего пользователя).
func (i Identity) IsZero() bool {
	return i.ID == ""
}

// IsAdmin проверяет роль администратора.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IsManager проверяет роль менеджера.
func (i Identity) IsManager() bool { return i.Role == RoleManager }

// IsCustomer проверяет роль покупателя.
func (i Identity) IsCustomer() bool { return i.Role == RoleCustomer }

// CanManageStore отвечает, может ли identity управлять магазином.
// Администратор управляет любым магазином, менеджер — только своими.
func (i Identity) CanManageStore(storeID string) bool {
	if i.IsZero() {
		return false
	}
	if i.IsAdmin() {
		return true
	}
	if !i.IsManager() {
		return false
	}
	for _, id := range i.ManagedStores {
		if id == storeID {
			return true
		}
	}
	return false
}

// Capabilities — единая точка разрешений для всех слоёв. Ролевые проверки
// не дублируются по обработчикам, а вычисляются здесь один раз.
type Capabilities struct {
	authenticated bool
	role          Role
	managed       map[string]struct{}
}

// CapabilitiesFor строит набор разрешений для identity.
func CapabilitiesFor(identity Identity) Capabilities {
	caps := Capabilities{
		authenticated: !identity.IsZero(),
		role:          identity.Role,
	}
	if len(identity.ManagedStores) > 0 {
		caps.managed = make(map[string]struct{}, len(identity.ManagedStores))
		for _, id := range identity.ManagedStores {
			caps.managed[id] = struct{}{}
		}
	}
	return caps
}

// CanViewDashboard — доступ к консоли управления.
func (c Capabilities) CanViewDashboard() bool {
	return c.authenticated && (c.role == RoleAdmin || c.role == RoleManager)
}

// CanManage — право на запись по конкретному магазину.
func (c Capabilities) CanManage(storeID string) bool {
	if !c.authenticated {
		return false
	}
	if c.role == RoleAdmin {
		return true
	}
	if c.role != RoleManager {
		return false
	}
	_, ok := c.managed[storeID]
	return ok
}

// CanCreateStore — создание магазинов доступно только администратору.
func (c Capabilities) CanCreateStore() bool {
	return c.authenticated && c.role == RoleAdmin
}

// CanCheckout — оформить заказ может любой аутентифицированный пользователь.
func (c Capabilities) CanCheckout() bool {
	return c.authenticated
}
