package product

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/storekit/backoffice/auth"
	"github.com/storekit/backoffice/response"
)

// CreateProductRequest payload
type CreateProductRequest struct {
	Name        string                `json:"name" form:"name"`
	Description string                `json:"description" form:"description"`
	Price       int64                 `json:"price" form:"price"`
	ShippingFee int64                 `json:"shipping_fee" form:"shipping_fee"`
	Status      int                   `json:"status" form:"status"`
	Options     []OptionPayload `json:"options" form:"options"`
}

// OptionPayload is one option row inside a product or option
// payload.
type OptionPayload struct {
	ID              int64  `json:"id,omitempty" form:"id"`
	Name            string `json:"name" form:"name"`
	AdditionalPrice int64  `json:"additional_price" form:"additional_price"`
}

// Validate will run validation rules
func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Price, validation.Required, validation.Min(1)),
		validation.Field(&r.ShippingFee, validation.Min(0)),
		validation.Field(&r.Status, validation.In(0, StatusOnSale, StatusSoldOut)),
		validation.Field(&r.Options, validation.Length(0, MaxOptionsPerProduct)),
	)
}

// UpdateProductRequest payload. Zero valued fields are left untouched.
type UpdateProductRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Price       int64  `json:"price" form:"price"`
	ShippingFee int64  `json:"shipping_fee" form:"shipping_fee"`
	Status      int    `json:"status" form:"status"`
}

// Validate will run validation rules
func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Price, validation.Min(0)),
		validation.Field(&r.ShippingFee, validation.Min(0)),
		validation.Field(&r.Status, validation.In(0, StatusOnSale, StatusSoldOut)),
	)
}

// UpdateOptionsRequest payload
type UpdateOptionsRequest struct {
	Options []OptionPayload `json:"options" form:"options"`
}

// Validate will run validation rules
func (r UpdateOptionsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Options, validation.Required),
	)
}

// Controller exposes the storefront-facing catalog reads. The rule table
// fronts these paths with an authenticated-only check.
type Controller struct {
	service *Service
	logger  auth.Logger
}

// NewController builds the catalog read controller.
func NewController(service *Service) *Controller {
	return &Controller{
		service: service,
		logger:  auth.NopLogger(),
	}
}

func (ctrl *Controller) WithLogger(logger auth.Logger) *Controller {
	ctrl.logger = logger
	return ctrl
}

// RegisterRoutes mounts the catalog read endpoints.
func (ctrl *Controller) RegisterRoutes(app fiber.Router) {
	app.Get("/product/list", ctrl.List)
	app.Get("/product/detail/:id", ctrl.Detail)
}

// List handles GET /product/list.
func (ctrl *Controller) List(c *fiber.Ctx) error {
	query := ListQuery{
		Name: c.Query("name"),
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", 10),
	}

	result, err := ctrl.service.List(c.UserContext(), query)
	if err != nil {
		ctrl.logger.Error("List products failed", "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not list products")
	}

	return response.OK(c, result)
}

// Detail handles GET /product/detail/:id.
func (ctrl *Controller) Detail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	record, err := ctrl.service.Get(c.UserContext(), int64(id))
	if err != nil {
		if errors.IsNotFound(err) {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		ctrl.logger.Error("Get product failed", "product_id", id, "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not load product")
	}

	return response.OK(c, record)
}

// AdminController exposes catalog management. The rule table restricts
// these paths to operator capabilities.
type AdminController struct {
	service *Service
	logger  auth.Logger
}

// NewAdminController builds the catalog admin controller.
func NewAdminController(service *Service) *AdminController {
	return &AdminController{
		service: service,
		logger:  auth.NopLogger(),
	}
}

func (ctrl *AdminController) WithLogger(logger auth.Logger) *AdminController {
	ctrl.logger = logger
	return ctrl
}

// RegisterRoutes mounts the catalog management endpoints.
func (ctrl *AdminController) RegisterRoutes(app fiber.Router) {
	app.Get("/admin/select-option", ctrl.SelectOptions)
	app.Post("/admin/product", ctrl.Create)
	app.Patch("/admin/product/:id", ctrl.Update)
	app.Delete("/admin/product/:id", ctrl.Delete)
	app.Get("/admin/product-option/list", ctrl.OptionOverview)
	app.Get("/admin/product-option/list/:productId", ctrl.Options)
	app.Put("/admin/product-option/:productId", ctrl.UpdateOptions)
	app.Delete("/admin/product-option/:optionId", ctrl.DeleteOption)
}

// SelectOptions handles GET /admin/select-option.
func (ctrl *AdminController) SelectOptions(c *fiber.Ctx) error {
	records, err := ctrl.service.SelectOptions(c.UserContext())
	if err != nil {
		ctrl.logger.Error("List select options failed", "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not list select options")
	}
	return response.OK(c, records)
}

// Create handles POST /admin/product.
func (ctrl *AdminController) Create(c *fiber.Ctx) error {
	payload := new(CreateProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	options := make([]OptionInput, 0, len(payload.Options))
	for _, opt := range payload.Options {
		options = append(options, OptionInput{
			Name:            opt.Name,
			AdditionalPrice: opt.AdditionalPrice,
		})
	}

	record, err := ctrl.service.Create(c.UserContext(), ProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		ShippingFee: payload.ShippingFee,
		Status:      payload.Status,
	}, options)
	if err != nil {
		if errors.Is(err, ErrOptionLimitExceeded) {
			return response.Fail(c, fiber.StatusBadRequest, ErrOptionLimitExceeded.Message)
		}
		ctrl.logger.Error("Create product failed", "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not create product")
	}

	return response.Created(c, record)
}

// Update handles PATCH /admin/product/:id.
func (ctrl *AdminController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	payload := new(UpdateProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.service.Update(c.UserContext(), int64(id), ProductInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		ShippingFee: payload.ShippingFee,
		Status:      payload.Status,
	}); err != nil {
		if errors.IsNotFound(err) {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		ctrl.logger.Error("Update product failed", "product_id", id, "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not update product")
	}

	return response.Message(c, "product updated")
}

// Delete handles DELETE /admin/product/:id.
func (ctrl *AdminController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	if err := ctrl.service.Delete(c.UserContext(), int64(id)); err != nil {
		if errors.IsNotFound(err) {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		ctrl.logger.Error("Delete product failed", "product_id", id, "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not delete product")
	}

	return response.Message(c, "product deleted")
}

// OptionOverview handles GET /admin/product-option/list: one page of
// products with their option counts, searchable by product name.
func (ctrl *AdminController) OptionOverview(c *fiber.Ctx) error {
	query := ListQuery{
		Name: c.Query("name"),
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", 10),
	}

	result, err := ctrl.service.OptionOverview(c.UserContext(), query)
	if err != nil {
		ctrl.logger.Error("Option overview failed", "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not list the option overview")
	}

	return response.OK(c, result)
}

// Options handles GET /admin/product-option/list/:productId.
func (ctrl *AdminController) Options(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID < 1 {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	records, err := ctrl.service.Options(c.UserContext(), int64(productID))
	if err != nil {
		if errors.IsNotFound(err) {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		ctrl.logger.Error("List options failed", "product_id", productID, "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not list product options")
	}

	return response.OK(c, records)
}

// UpdateOptions handles PUT /admin/product-option/:productId.
func (ctrl *AdminController) UpdateOptions(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("productId")
	if err != nil || productID < 1 {
		return response.Fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	payload := new(UpdateOptionsRequest)
	if err := c.BodyParser(payload); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, "could not parse request body")
	}

	if err := payload.Validate(); err != nil {
		return response.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	inputs := make([]OptionInput, 0, len(payload.Options))
	for _, opt := range payload.Options {
		inputs = append(inputs, OptionInput{
			ID:              opt.ID,
			Name:            opt.Name,
			AdditionalPrice: opt.AdditionalPrice,
		})
	}

	if err := ctrl.service.UpdateOptions(c.UserContext(), int64(productID), inputs); err != nil {
		if errors.Is(err, ErrOptionLimitExceeded) {
			return response.Fail(c, fiber.StatusBadRequest, ErrOptionLimitExceeded.Message)
		}
		if errors.IsNotFound(err) {
			return response.Fail(c, fiber.StatusNotFound, "product not found")
		}
		ctrl.logger.Error("Update options failed", "product_id", productID, "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not update product options")
	}

	return response.Message(c, "options updated")
}

// DeleteOption handles DELETE /admin/product-option/:optionId.
func (ctrl *AdminController) DeleteOption(c *fiber.Ctx) error {
	optionID, err := c.ParamsInt("optionId")
	if err != nil || optionID < 1 {
		return response.Fail(c, fiber.StatusBadRequest, "invalid option id")
	}

	if err := ctrl.service.DeleteOption(c.UserContext(), int64(optionID)); err != nil {
		if errors.IsNotFound(err) {
			return response.Fail(c, fiber.StatusNotFound, "option not found")
		}
		ctrl.logger.Error("Delete option failed", "option_id", optionID, "error", err)
		return response.Fail(c, fiber.StatusInternalServerError, "could not delete product option")
	}

	return response.Message(c, "option deleted")
}
