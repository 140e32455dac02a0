package api

import (
	"database/sql"
	"net/http"

	"github.com/avillegas/inventario/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	accountsHandler := &AccountsHandler{DB: db}
	areasHandler := &AreasHandler{DB: db}
	usersHandler := &UsersHandler{DB: db}
	categoriesHandler := &CategoriesHandler{DB: db}
	brandsHandler := &BrandsHandler{DB: db}
	productsHandler := &ProductsHandler{DB: db}
	stockHandler := &StockHandler{DB: db}
	deliveriesHandler := &DeliveriesHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Accounts (admin only).
	mux.Handle("GET /api/accounts", authMW(requireAdmin(http.HandlerFunc(accountsHandler.List))))
	mux.Handle("POST /api/accounts", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Create))))
	mux.Handle("GET /api/accounts/{id}", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Get))))
	mux.Handle("PUT /api/accounts/{id}", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Update))))
	mux.Handle("PUT /api/accounts/{id}/password", authMW(requireAdmin(http.HandlerFunc(accountsHandler.ResetPassword))))
	mux.Handle("DELETE /api/accounts/{id}", authMW(requireAdmin(http.HandlerFunc(accountsHandler.Delete))))

	// Areas: read (all roles), write (manager+).
	mux.Handle("GET /api/areas", authMW(http.HandlerFunc(areasHandler.List)))
	mux.Handle("POST /api/areas", authMW(requireManager(http.HandlerFunc(areasHandler.Create))))
	mux.Handle("GET /api/areas/{id}", authMW(http.HandlerFunc(areasHandler.Get)))
	mux.Handle("PUT /api/areas/{id}", authMW(requireManager(http.HandlerFunc(areasHandler.Update))))
	mux.Handle("DELETE /api/areas/{id}", authMW(requireManager(http.HandlerFunc(areasHandler.Delete))))

	// Users (delivery recipients): read (all roles), write (manager+).
	mux.Handle("GET /api/users", authMW(http.HandlerFunc(usersHandler.List)))
	mux.Handle("POST /api/users", authMW(requireManager(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(http.HandlerFunc(usersHandler.Get)))
	mux.Handle("PUT /api/users/{id}", authMW(requireManager(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireManager(http.HandlerFunc(usersHandler.Delete))))

	// Categories: read (all roles), write (manager+).
	mux.Handle("GET /api/categories", authMW(http.HandlerFunc(categoriesHandler.List)))
	mux.Handle("POST /api/categories", authMW(requireManager(http.HandlerFunc(categoriesHandler.Create))))
	mux.Handle("PUT /api/categories/{id}", authMW(requireManager(http.HandlerFunc(categoriesHandler.Update))))
	mux.Handle("DELETE /api/categories/{id}", authMW(requireManager(http.HandlerFunc(categoriesHandler.Delete))))

	// Brands: read (all roles), write (manager+).
	mux.Handle("GET /api/brands", authMW(http.HandlerFunc(brandsHandler.List)))
	mux.Handle("POST /api/brands", authMW(requireManager(http.HandlerFunc(brandsHandler.Create))))
	mux.Handle("PUT /api/brands/{id}", authMW(requireManager(http.HandlerFunc(brandsHandler.Update))))
	mux.Handle("DELETE /api/brands/{id}", authMW(requireManager(http.HandlerFunc(brandsHandler.Delete))))

	// Products: read (all roles), write (manager+).
	mux.Handle("GET /api/products", authMW(http.HandlerFunc(productsHandler.List)))
	mux.Handle("POST /api/products", authMW(requireManager(http.HandlerFunc(productsHandler.Create))))
	mux.Handle("GET /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Get)))
	mux.Handle("PUT /api/products/{id}", authMW(requireManager(http.HandlerFunc(productsHandler.Update))))
	mux.Handle("DELETE /api/products/{id}", authMW(requireManager(http.HandlerFunc(productsHandler.Delete))))
	mux.Handle("PUT /api/products/{id}/image", authMW(requireManager(http.HandlerFunc(productsHandler.UploadImage))))
	mux.Handle("GET /api/products/{id}/image", authMW(http.HandlerFunc(productsHandler.GetImage)))

	// Stock items (serialized units): read (all roles), write (manager+).
	mux.Handle("GET /api/stock/items", authMW(http.HandlerFunc(stockHandler.ListItems)))
	mux.Handle("POST /api/stock/items", authMW(requireManager(http.HandlerFunc(stockHandler.CreateItem))))
	mux.Handle("GET /api/stock/items/{id}", authMW(http.HandlerFunc(stockHandler.GetItem)))
	mux.Handle("PUT /api/stock/items/{id}", authMW(requireManager(http.HandlerFunc(stockHandler.UpdateItem))))
	mux.Handle("DELETE /api/stock/items/{id}", authMW(requireManager(http.HandlerFunc(stockHandler.DeleteItem))))

	// Stock quantities (pooled units): read (all roles), adjust (manager+).
	mux.Handle("GET /api/stock/quantities", authMW(http.HandlerFunc(stockHandler.ListQuantities)))
	mux.Handle("PUT /api/stock/quantities/{id}", authMW(requireManager(http.HandlerFunc(stockHandler.AdjustQuantity))))
	mux.Handle("GET /api/stock/low", authMW(http.HandlerFunc(stockHandler.ListLowStock)))

	// Deliveries: read and create (all roles), delete (manager+).
	mux.Handle("GET /api/deliveries", authMW(http.HandlerFunc(deliveriesHandler.List)))
	mux.Handle("POST /api/deliveries", authMW(http.HandlerFunc(deliveriesHandler.Create)))
	mux.Handle("GET /api/deliveries/{id}", authMW(http.HandlerFunc(deliveriesHandler.Get)))
	mux.Handle("DELETE /api/deliveries/{id}", authMW(requireManager(http.HandlerFunc(deliveriesHandler.Delete))))

	return mux
}
