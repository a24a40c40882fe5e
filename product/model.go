// Package product implements the catalog: products, per-product options,
// and the admin-managed select option pool. Deletions are soft throughout;
// a deleted product takes its options with it.
package product

import (
	"time"

	"github.com/uptrace/bun"
)

// Status values a product can be in.
const (
	StatusOnSale  = 1
	StatusSoldOut = 2
)

// MaxOptionsPerProduct caps how many options a product may carry.
const MaxOptionsPerProduct = 3

// Product is the catalog entry model
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name"`
	Description   string     `bun:"description,notnull" json:"description"`
	Price         int64      `bun:"price,notnull" json:"price"`
	ShippingFee   int64      `bun:"shipping_fee,notnull" json:"shipping_fee"`
	Status        int        `bun:"status,notnull" json:"status"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`

	Options []*Option `bun:"rel:has-many,join:id=product_id" json:"options,omitempty"`
}

// Option belongs to a product and adjusts its price.
type Option struct {
	bun.BaseModel   `bun:"table:product_options,alias:opt"`
	ID              int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	ProductID       int64      `bun:"product_id,notnull" json:"product_id,omitempty"`
	Name            string     `bun:"name,notnull" json:"name"`
	AdditionalPrice int64      `bun:"additional_price,notnull" json:"additional_price"`
	DeletedAt       *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// OptionOverview is one row of the admin option overview: a product and
// the number of live options it carries.
type OptionOverview struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            int64      `bun:"id" json:"id"`
	Name          string     `bun:"name" json:"name"`
	Status        int        `bun:"status" json:"status"`
	OptionCount   int        `bun:"option_count,scanonly" json:"option_count"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"-"`
}

// SelectOption is an entry in the admin-managed pool of reusable option
// names.
type SelectOption struct {
	bun.BaseModel `bun:"table:select_options,alias:sel"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string `bun:"name,notnull" json:"name"`
}
