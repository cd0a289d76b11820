package routes

import (
	"Food-Quality-Registry/internal/api/handlers"
	"Food-Quality-Registry/internal/middleware"
	"Food-Quality-Registry/internal/views"
	"Food-Quality-Registry/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	FoodProductHandler handlers.FoodProductHandler
	FoodProductView    views.FoodProductView
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
	CORSOrigins        string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware(c.CORSOrigins))
	c.GuestRoute()
	c.FoodProducts()
	c.FoodProductPages()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works. test"})
	})
}

// FoodProducts registers the JSON API. Static segments go before /:id.
func (c *Config) FoodProducts() {
	foodProducts := c.App.Group("/api/food-products", c.Middleware.Authenticate(c.JWTService))

	foodProducts.Post("", c.FoodProductHandler.CreateFoodProduct)
	foodProducts.Get("", c.FoodProductHandler.GetFoodProducts)
	foodProducts.Get("/batches", c.FoodProductHandler.GetBatchCodes)
	foodProducts.Get("/stats", c.FoodProductHandler.GetInspectionStats)
	foodProducts.Get("/:id", c.FoodProductHandler.GetFoodProduct)
	foodProducts.Put("/:id", c.FoodProductHandler.UpdateFoodProduct)
	foodProducts.Put("/:id/image", c.FoodProductHandler.UpdateFoodProductImage)
	foodProducts.Delete("/:id", c.FoodProductHandler.DeleteFoodProduct)
}

func (c *Config) FoodProductPages() {
	if c.FoodProductView == nil {
		return
	}
	pages := c.App.Group("/food-products", c.Middleware.Authenticate(c.JWTService))

	pages.Get("", c.FoodProductView.Home)
	pages.Get("/list", c.FoodProductView.List)
	pages.Get("/add", c.FoodProductView.AddPage)
	pages.Post("/add", c.FoodProductView.Add)
	pages.Get("/edit/:id", c.FoodProductView.EditPage)
	pages.Post("/edit", c.FoodProductView.Edit)
	pages.Get("/edit-image/:id", c.FoodProductView.EditImagePage)
	pages.Post("/edit-image", c.FoodProductView.EditImage)
	pages.Get("/delete/:id", c.FoodProductView.DeletePage)
	pages.Post("/delete", c.FoodProductView.Delete)
	pages.Get("/image/:filename", c.FoodProductView.Image)
	pages.Get("/:id", c.FoodProductView.Detail)
}
