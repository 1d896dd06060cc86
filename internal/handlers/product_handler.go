package handlers

import (
	"productapi/internal/models"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

// MessageProductNotFound is the body message of update and delete 404s.
const MessageProductNotFound = "Product not found"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:productId", h.HandleGetProduct)
	productRoutes.Put("/:productId", h.HandleUpdateProduct)
	productRoutes.Delete("/:productId", h.HandleDeleteProduct)
}

func productIDParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("productId"))
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": MessageProductNotFound,
	})
}

func (h *ProductHandler) storageFault(c *fiber.Ctx, err error, message, productID string) error {
	h.log.Error().Err(err).Str("productId", productID).Msg(message)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// HandleCreateProduct creates a product from {title, description}.
// Fields are stored as given.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		h.log.Warn().Err(err).Msg("error parsing create product body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		return h.storageFault(c, err, "Could not create product", "")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return h.storageFault(c, err, "Could not retrieve products", "")
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product. A missing product is a 404 with an
// empty body.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := productIDParam(c)
	product, err := h.service.GetProduct(c.UserContext(), productID)
	if err != nil {
		return h.storageFault(c, err, "Could not retrieve product", productID)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}
	return c.JSON(product)
}

// HandleUpdateProduct checks the product exists, then applies title and
// description from the body. An empty body only refreshes updatedAt.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := productIDParam(c)

	existing, err := h.service.GetProduct(c.UserContext(), productID)
	if err != nil {
		return h.storageFault(c, err, "Could not retrieve product", productID)
	}
	if existing == nil {
		return notFound(c)
	}

	var update models.ProductUpdate
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&update); err != nil {
			h.log.Warn().Err(err).Str("productId", productID).Msg("error parsing update product body")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	product, err := h.service.UpdateProduct(c.UserContext(), productID, update)
	if err != nil {
		return h.storageFault(c, err, "Could not update product", productID)
	}
	// deleted between the lookup and the update
	if product == nil {
		return notFound(c)
	}
	return c.JSON(product)
}

// HandleDeleteProduct checks the product exists, deletes it and answers 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := productIDParam(c)

	existing, err := h.service.GetProduct(c.UserContext(), productID)
	if err != nil {
		return h.storageFault(c, err, "Could not retrieve product", productID)
	}
	if existing == nil {
		return notFound(c)
	}

	if _, err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		return h.storageFault(c, err, "Could not delete product", productID)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
