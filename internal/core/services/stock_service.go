package services

import (
	"context"
	"errors"
	"io"
	"log"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"
	"pharmadz/internal/core/domain"
	"pharmadz/internal/pkg/spreadsheet"

	"gorm.io/gorm"
)

// StockService manages a pharmacy's stock list. Every mutation rebuilds the
// list in memory first and commits the whole list in one transaction, so a
// failed commit leaves the stored list untouched.
type StockService struct {
	pharmacyRepo repositories.PharmacyRepository
}

// NewStockService creates a new stock service
func NewStockService(pharmacyRepo repositories.PharmacyRepository) *StockService {
	return &StockService{pharmacyRepo: pharmacyRepo}
}

// List returns the stock list in insertion order.
func (s *StockService) List(ctx context.Context, pharmacyID string) (domain.StockList, error) {
	return s.load(ctx, pharmacyID)
}

// Append adds one item at the end of the list.
func (s *StockService) Append(ctx context.Context, pharmacyID string, item domain.StockItem) (domain.StockList, error) {
	current, err := s.load(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	next, err := current.Append(item)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, pharmacyID, next)
}

// Update patches the item at index. Only fields present in the patch change.
func (s *StockService) Update(ctx context.Context, pharmacyID string, index int, patch domain.StockPatch) (domain.StockList, error) {
	current, err := s.load(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	next, err := current.Update(index, patch)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, pharmacyID, next)
}

// Remove drops the item at index.
func (s *StockService) Remove(ctx context.Context, pharmacyID string, index int) (domain.StockList, error) {
	current, err := s.load(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	next, err := current.Remove(index)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, pharmacyID, next)
}

// Replace swaps the whole stock list. The incoming list wins over whatever is
// stored; callers submitting concurrently overwrite each other.
func (s *StockService) Replace(ctx context.Context, pharmacyID string, list domain.StockList) (domain.StockList, error) {
	if err := list.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, pharmacyID); err != nil {
		return nil, err
	}

	return s.commit(ctx, pharmacyID, list)
}

// Import parses an uploaded workbook and replaces the stock list with its
// rows. The filename gates the format before any bytes are read.
func (s *StockService) Import(ctx context.Context, pharmacyID, filename string, r io.Reader) (domain.StockList, error) {
	if !spreadsheet.IsSupportedFilename(filename) {
		return nil, spreadsheet.ErrUnsupportedFileType
	}

	list, err := spreadsheet.ParseStock(r)
	if err != nil {
		return nil, err
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, pharmacyID); err != nil {
		return nil, err
	}

	committed, err := s.commit(ctx, pharmacyID, list)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Stock imported for pharmacy %s: %d items", pharmacyID, len(committed))
	return committed, nil
}

// load fetches the current stock list, mapping a missing pharmacy.
func (s *StockService) load(ctx context.Context, pharmacyID string) (domain.StockList, error) {
	pharmacy, err := s.pharmacyRepo.GetByID(ctx, pharmacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPharmacyNotFound
		}
		return nil, err
	}
	return models.StockToDomain(pharmacy.Stock), nil
}

// commit stores the list and returns it on success.
func (s *StockService) commit(ctx context.Context, pharmacyID string, list domain.StockList) (domain.StockList, error) {
	items := models.StockFromDomain(pharmacyID, list)
	if err := s.pharmacyRepo.ReplaceStock(ctx, pharmacyID, items); err != nil {
		return nil, err
	}
	return list, nil
}
