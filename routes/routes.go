package routes

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"

	"minimart/config"
	"minimart/logger"
	"minimart/middleware"
	"minimart/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected clients map with mutex for thread safety
var clients = make(map[*websocket.Conn]bool)
var broadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var mutex = &sync.Mutex{}
var validate = validator.New()

var jwtSecret string

func SetupRoutes(app *fiber.App, cfg *config.Config) {
	jwtSecret = cfg.JWTSecret

	wsHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.L().Error("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		mutex.Lock()
		clients[conn] = true
		mutex.Unlock()
		logger.L().Info("websocket client connected", zap.String("addr", conn.RemoteAddr().String()))

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				mutex.Lock()
				delete(clients, conn)
				mutex.Unlock()
				logger.L().Info("websocket client disconnected", zap.String("addr", conn.RemoteAddr().String()))
				break
			}
		}
	})

	// Push checkout events to all connected clients
	go func() {
		for message := range broadcast {
			mutex.Lock()
			for client := range clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					logger.L().Error("websocket write failed", zap.Error(err))
					client.Close()
					delete(clients, client)
				}
			}
			mutex.Unlock()
		}
	}()

	// Order event feed for the admin panel
	app.Get("/ws", wsHandler)
	// Image upload route
	app.Post("/upload", uploadImage)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(rate.Limit(5), 20), register)
	auth.Post("/login", middleware.RateLimit(rate.Limit(5), 20), login)
	auth.Get("/user/:id", getUser)
	auth.Put("/user/:id", updateUser)
	auth.Delete("/user/:id", deleteUser)

	// Product routes
	products := api.Group("/products")
	products.Get("/search", searchProducts)
	products.Get("/seller/:sellerId", getProductsForSeller)
	products.Post("/bulk-upload", bulkUploadProducts)
	products.Post("/", createProduct)
	products.Get("/", getAllProducts)
	products.Get("/:id", getProduct)
	products.Put("/:id", updateProduct)
	products.Delete("/:id", deleteProduct)

	// Category routes
	categories := api.Group("/categories")
	categories.Post("/", createCategory)
	categories.Get("/", getAllCategories)
	categories.Get("/:id", getCategory)
	categories.Put("/:id", updateCategory)
	categories.Delete("/:id", deleteCategory)

	// Cart routes
	cart := api.Group("/cart")
	cart.Get("/:userId", getCart)
	cart.Post("/:userId/add", addToCart)
	cart.Put("/:userId/quantity", updateCartQuantity)
	cart.Delete("/:userId/item/:itemId", removeCartItem)
	cart.Delete("/:userId/product/:productId", removeCartProduct)
	cart.Delete("/:userId/clear", clearCart)

	// Order routes
	orders := api.Group("/orders")
	orders.Get("/user/:userId", getOrdersByUser)
	orders.Get("/seller/:sellerId", getOrdersForSeller)
	orders.Post("/user/:userId", createOrder)
	orders.Get("/:id", getOrder)
	orders.Put("/:id/status", updateOrderStatus)
	orders.Delete("/:id", deleteOrder)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Get("/product/:productId/summary", getReviewSummary)
	reviews.Get("/product/:productId", getReviewsByProduct)
	reviews.Get("/user/:userId", getReviewsByUser)
	reviews.Post("/", createReview)
	reviews.Put("/:id", updateReview)
	reviews.Delete("/:id", deleteReview)

	// Favorite routes
	favorites := api.Group("/favorites")
	favorites.Get("/user/:userId", getFavoritesByUser)
	favorites.Post("/user/:userId", addFavorite)
	favorites.Delete("/user/:userId/clear", clearFavorites)
	favorites.Delete("/:id", deleteFavorite)

	// Admin routes, guarded by role
	admin := api.Group("/admin", middleware.RequireRole(cfg.JWTSecret, models.RoleAdmin))
	admin.Get("/orders", adminGetAllOrders)
	admin.Delete("/orders/:id", adminDeleteOrder)
	admin.Get("/users", adminGetAllUsers)
	admin.Delete("/users/:id", adminDeleteUser)
	admin.Put("/users/:id/role", adminUpdateUserRole)
}

// broadcastOrder pushes a created order to the websocket feed.
func broadcastOrder(order *models.Order) {
	payload, err := json.Marshal(fiber.Map{
		"event": "order_created",
		"order": order,
	})
	if err != nil {
		return
	}
	select {
	case broadcast <- payload:
	default:
		// Feed is saturated, drop the event rather than block checkout
	}
}

// uploadImage stores a multipart image under uploads/ with a uuid
// filename and returns the path to save on a product.
func uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, "./uploads/"+filename); err != nil {
		logger.L().Error("saving uploaded image failed",
			zap.String("filename", filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}
