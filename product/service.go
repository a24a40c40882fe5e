package product

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/storekit/backoffice/auth"
)

// TextCodeOptionLimit marks attempts to attach more options than a
// product may carry.
const TextCodeOptionLimit = "PRODUCT_OPTION_LIMIT"

// ErrOptionLimitExceeded is returned when an update would leave a product
// with more than MaxOptionsPerProduct options.
var ErrOptionLimitExceeded = errors.New("a product can carry at most 3 options", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeOptionLimit)

// ProductInput carries product fields into create and update operations.
type ProductInput struct {
	Name        string
	Description string
	Price       int64
	ShippingFee int64
	Status      int
}

// OptionInput carries one option row. ID zero means create.
type OptionInput struct {
	ID              int64
	Name            string
	AdditionalPrice int64
}

// ListResult is one page of catalog entries.
type ListResult struct {
	Items []*Product `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
}

// Service implements catalog workflows over the store.
type Service struct {
	store  *Store
	logger auth.Logger
}

// NewService creates the catalog service.
func NewService(store *Store) *Service {
	return &Service{
		store:  store,
		logger: auth.NopLogger(),
	}
}

func (s *Service) WithLogger(logger auth.Logger) *Service {
	s.logger = logger
	return s
}

// Create registers a product together with its initial options.
func (s *Service) Create(ctx context.Context, input ProductInput, options []OptionInput) (*Product, error) {
	if len(options) > MaxOptionsPerProduct {
		return nil, ErrOptionLimitExceeded
	}

	status := input.Status
	if status == 0 {
		status = StatusOnSale
	}

	record := &Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ShippingFee: input.ShippingFee,
		Status:      status,
	}

	rows := make([]*Option, 0, len(options))
	for _, opt := range options {
		rows = append(rows, &Option{
			Name:            opt.Name,
			AdditionalPrice: opt.AdditionalPrice,
		})
	}

	if err := s.store.CreateProduct(ctx, record, rows); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create product")
	}

	s.logger.Info("product created", "product_id", record.ID, "name", record.Name)

	return record, nil
}

// List returns one page of products, optionally filtered by name.
func (s *Service) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	query = query.normalized()
	items, total, err := s.store.ListProducts(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not list products")
	}
	return &ListResult{
		Items: items,
		Total: total,
		Page:  query.Page,
		Size:  query.Size,
	}, nil
}

// Get returns one product with its options.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Update modifies product fields only; options have their own operations.
func (s *Service) Update(ctx context.Context, id int64, input ProductInput) error {
	record, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if input.Name != "" {
		record.Name = input.Name
	}
	if input.Description != "" {
		record.Description = input.Description
	}
	if input.Price > 0 {
		record.Price = input.Price
	}
	if input.ShippingFee > 0 {
		record.ShippingFee = input.ShippingFee
	}
	if input.Status != 0 {
		record.Status = input.Status
	}

	return s.store.UpdateProduct(ctx, record)
}

// Delete soft deletes the product and its options.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteProduct(ctx, id)
}

// UpdateOptions creates and updates a product's options in one call.
// Inputs with a known ID update that option; inputs without one create a
// new option, subject to the per-product cap.
func (s *Service) UpdateOptions(ctx context.Context, productID int64, inputs []OptionInput) error {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return err
	}

	existing, err := s.store.OptionsForProduct(ctx, productID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "could not load product options")
	}

	byID := make(map[int64]*Option, len(existing))
	for _, opt := range existing {
		byID[opt.ID] = opt
	}

	creating := 0
	for _, in := range inputs {
		if in.ID == 0 {
			creating++
		}
	}
	if len(existing)+creating > MaxOptionsPerProduct {
		return ErrOptionLimitExceeded
	}

	rows := make([]*Option, 0, len(inputs))
	for _, in := range inputs {
		if in.ID != 0 {
			opt, ok := byID[in.ID]
			if !ok {
				// Options of other products are not reachable from here.
				continue
			}
			opt.Name = in.Name
			opt.AdditionalPrice = in.AdditionalPrice
			rows = append(rows, opt)
			continue
		}
		rows = append(rows, &Option{
			ProductID:       productID,
			Name:            in.Name,
			AdditionalPrice: in.AdditionalPrice,
		})
	}

	return s.store.SaveOptions(ctx, rows)
}

// OptionOverviewResult is one page of the admin option overview.
type OptionOverviewResult struct {
	Items []*OptionOverview `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// OptionOverview returns one page of products with their option counts,
// optionally filtered by product name.
func (s *Service) OptionOverview(ctx context.Context, query ListQuery) (*OptionOverviewResult, error) {
	query = query.normalized()
	items, total, err := s.store.ListOptionOverview(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not list the option overview")
	}
	return &OptionOverviewResult{
		Items: items,
		Total: total,
		Page:  query.Page,
		Size:  query.Size,
	}, nil
}

// Options returns the live options of a product.
func (s *Service) Options(ctx context.Context, productID int64) ([]*Option, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.store.OptionsForProduct(ctx, productID)
}

// DeleteOption soft deletes one option.
func (s *Service) DeleteOption(ctx context.Context, optionID int64) error {
	return s.store.DeleteOption(ctx, optionID)
}

// SelectOptions returns the admin pool of reusable option names.
func (s *Service) SelectOptions(ctx context.Context) ([]*SelectOption, error) {
	return s.store.ListSelectOptions(ctx)
}
