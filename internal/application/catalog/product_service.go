package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retaildist/backend/internal/application/uow"
	"github.com/retaildist/backend/internal/domain/catalog"
	"github.com/retaildist/backend/internal/domain/inventory"
	"github.com/retaildist/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	txScope     uow.TransactionScope
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, txScope uow.TransactionScope) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		txScope:     txScope,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Product with SKU %s already exists", req.SKU))
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.BuyPrice, req.SellPrice, req.CategoryID, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update updates a product's name and prices. Stock quantity is not touched
// here; use UpdateQuantity so the correction lands in the ledger.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.BuyPrice, req.SellPrice); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateQuantity applies a manual stock correction by an employee. The
// product quantity and the paired ledger entry are written in one unit of
// work; the entry type records the direction of the correction.
func (s *ProductService) UpdateQuantity(ctx context.Context, id uuid.UUID, req UpdateQuantityRequest) (*ProductResponse, error) {
	var resp ProductResponse
	err := s.txScope.Execute(ctx, func(repos uow.Repositories) error {
		product, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}

		delta := req.NewQuantity - product.StockQuantity
		if delta == 0 {
			return shared.NewDomainError("INVALID_INPUT", "New quantity equals current quantity")
		}

		txType := inventory.TransactionTypeUpdatedInByEmployee
		if delta < 0 {
			txType = inventory.TransactionTypeUpdatedOutByEmployee
		}

		if err := product.ApplyStockDelta(delta); err != nil {
			return err
		}
		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}

		entry, err := inventory.NewStockTransaction(product.ID, txType, delta)
		if err != nil {
			return err
		}
		entry.WithStoreManager(req.ManagerID).WithNote(req.Note)
		if err := repos.StockTransactions().Append(ctx, entry); err != nil {
			return err
		}

		resp = ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns an active product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of active products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search

	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &page, nil
}

// Delete soft-deletes a product. The row and its ledger history remain.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.MarkDeleted(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// Restore reverses a soft delete
func (s *ProductService) Restore(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDIncludingDeleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Restore(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}
