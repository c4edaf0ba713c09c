// Package seed наполняет репозитории демонстрационными данными витрины.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Data описывает стартовое состояние каталога и демо-аккаунты.
type Data struct {
	Accounts []Account `yaml:"accounts"`
	Stores   []Store   `yaml:"stores"`
	Products []Product `yaml:"products"`
	Sales    []Sale    `yaml:"sales"`
}

type Account struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Email         string   `yaml:"email"`
	Role          string   `yaml:"role"`
	ManagedStores []string `yaml:"managed_stores"`
}

type Store struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Address  string   `yaml:"address"`
	City     string   `yaml:"city"`
	Phone    string   `yaml:"phone"`
	Image    string   `yaml:"image"`
	Managers []string `yaml:"managers"`
}

type Product struct {
	ID          string `yaml:"id"`
	StoreID     string `yaml:"store_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       int64  `yaml:"price"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
	Stock       int32  `yaml:"stock"`
}

type Sale struct {
	ID        string     `yaml:"id"`
	StoreID   string     `yaml:"store_id"`
	UserID    string     `yaml:"user_id"`
	Lines     []SaleLine `yaml:"lines"`
	CreatedAt time.Time  `yaml:"created_at"`
}

type SaleLine struct {
	ProductID   string `yaml:"product_id"`
	Quantity    int32  `yaml:"quantity"`
	PriceAtSale int64  `yaml:"price_at_sale"`
}

// Repositories перечисляет хранилища, которые наполняет Apply.
type Repositories struct {
	Stores   domain.StoreRepository
	Products domain.ProductRepository
	Sales    domain.SaleRepository
}

// LoadFile читает состояние из YAML-файла.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("чтение файла seed: %w", err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("разбор файла seed: %w", err)
	}
	return data, nil
}

// Identities возвращает демо-аккаунты в доменном представлении.
func (d Data) Identities() []domain.Identity {
	identities := make([]domain.Identity, 0, len(d.Accounts))
	for _, a := range d.Accounts {
		identities = append(identities, domain.Identity{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			Role:          domain.Role(a.Role),
			ManagedStores: append([]string(nil), a.ManagedStores...),
		})
	}
	return identities
}

// Apply записывает данные в репозитории. Порядок фиксирован: магазины,
// товары, продажи.
func (d Data) Apply(repos Repositories) error {
	for _, s := range d.Stores {
		store := domain.Store{
			ID:       s.ID,
			Name:     s.Name,
			Address:  s.Address,
			City:     s.City,
			Phone:    s.Phone,
			Image:    s.Image,
			Managers: append([]string(nil), s.Managers...),
		}
		if err := repos.Stores.Create(store); err != nil {
			return fmt.Errorf("seed магазина %s: %w", s.ID, err)
		}
	}

	for _, p := range d.Products {
		product := domain.Product{
			ID:          p.ID,
			StoreID:     p.StoreID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
			Stock:       p.Stock,
		}
		if err := repos.Products.Create(product); err != nil {
			return fmt.Errorf("seed товара %s: %w", p.ID, err)
		}
	}

	for _, s := range d.Sales {
		lines := make([]domain.SaleLine, 0, len(s.Lines))
		total := int64(0)
		for _, l := range s.Lines {
			lines = append(lines, domain.SaleLine{
				ProductID:   l.ProductID,
				Quantity:    l.Quantity,
				PriceAtSale: l.PriceAtSale,
			})
			total += l.PriceAtSale * int64(l.Quantity)
		}
		sale := domain.Sale{
			ID:          s.ID,
			StoreID:     s.StoreID,
			UserID:      s.UserID,
			Lines:       lines,
			TotalAmount: total,
			CreatedAt:   s.CreatedAt,
		}
		if err := repos.Sales.Create(sale); err != nil {
			return fmt.Errorf("seed продажи %s: %w", s.ID, err)
		}
	}

	return nil
}

// Default возвращает встроенный демонстрационный набор данных.
func Default() Data {
	return Data{
		Accounts: []Account{
			{ID: "user-1", Name: "Demo Admin", Email: "admin@example.com", Role: "admin"},
			{ID: "user-2", Name: "Store Manager", Email: "manager@example.com", Role: "manager", ManagedStores: []string{"store-1", "store-2"}},
			{ID: "user-3", Name: "Customer", Email: "customer@example.com", Role: "customer"},
		},
		Stores: []Store{
			{
				ID:       "store-1",
				Name:     "Premium Stationery",
				Address:  "42 Linking Road",
				City:     "Mumbai",
				Phone:    "+91 98200 11111",
				Image:    "/images/stores/premium-stationery.jpg",
				Managers: []string{"user-2"},
			},
			{
				ID:       "store-2",
				Name:     "Office Supplies Co.",
				Address:  "8 Connaught Place",
				City:     "Delhi",
				Phone:    "+91 98100 22222",
				Image:    "/images/stores/office-supplies.jpg",
				Managers: []string{"user-2"},
			},
			{
				ID:      "store-3",
				Name:    "Scholar Stationery",
				Address: "17 Brigade Road",
				City:    "Bangalore",
				Phone:   "+91 99000 33333",
				Image:   "/images/stores/scholar-stationery.jpg",
			},
		},
		Products: []Product{
			{ID: "product-1", StoreID: "store-1", Name: "Premium Notebook", Description: "Блокнот A5 в твёрдой обложке, 192 страницы", Price: 399, Category: "Notebooks", Image: "/images/products/premium-notebook.jpg", Stock: 50},
			{ID: "product-2", StoreID: "store-1", Name: "Gel Pen Set", Description: "Набор из 10 гелевых ручек", Price: 249, Category: "Pens", Image: "/images/products/gel-pen-set.jpg", Stock: 100},
			{ID: "product-3", StoreID: "store-1", Name: "Desk Organizer", Description: "Деревянный настольный органайзер", Price: 599, Category: "Organization", Image: "/images/products/desk-organizer.jpg", Stock: 25},
			{ID: "product-4", StoreID: "store-2", Name: "A4 Paper Ream", Description: "500 листов, 80 г/м²", Price: 349, Category: "Paper", Image: "/images/products/a4-paper.jpg", Stock: 200},
			{ID: "product-5", StoreID: "store-2", Name: "Sticky Notes Pack", Description: "Упаковка стикеров, 12 блоков", Price: 149, Category: "Adhesives", Image: "/images/products/sticky-notes.jpg", Stock: 150},
			{ID: "product-6", StoreID: "store-2", Name: "Stapler", Description: "Степлер на 30 листов", Price: 199, Category: "Office Tools", Image: "/images/products/stapler.jpg", Stock: 75},
			{ID: "product-7", StoreID: "store-3", Name: "Geometry Box", Description: "Готовальня для школьников", Price: 299, Category: "School Supplies", Image: "/images/products/geometry-box.jpg", Stock: 40},
			{ID: "product-8", StoreID: "store-3", Name: "Scientific Calculator", Description: "Калькулятор с 240 функциями", Price: 799, Category: "Electronics", Image: "/images/products/calculator.jpg", Stock: 30},
			{ID: "product-9", StoreID: "store-3", Name: "Art Supplies Kit", Description: "Набор для рисования", Price: 549, Category: "Art", Image: "/images/products/art-kit.jpg", Stock: 35},
		},
		Sales: []Sale{
			{
				ID:      "sale-1",
				StoreID: "store-1",
				UserID:  "user-3",
				Lines: []SaleLine{
					{ProductID: "product-1", Quantity: 2, PriceAtSale: 399},
					{ProductID: "product-2", Quantity: 1, PriceAtSale: 249},
				},
				CreatedAt: time.Date(2025, time.April, 27, 10, 30, 0, 0, time.UTC),
			},
			{
				ID:      "sale-2",
				StoreID: "store-2",
				UserID:  "user-3",
				Lines: []SaleLine{
					{ProductID: "product-4", Quantity: 3, PriceAtSale: 349},
				},
				CreatedAt: time.Date(2025, time.May, 1, 14, 45, 0, 0, time.UTC),
			},
		},
	}
}
