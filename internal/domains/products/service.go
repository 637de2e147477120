package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/apperr"
	"github.com/shopspring/decimal"
)

// MaxPriceDigits is the widest price both stores keep exactly: the
// precision of a MongoDB Decimal128.
const MaxPriceDigits = 34

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	if err := validateInput(in); err != nil {
		return Product{}, err
	}

	saved, err := s.repo.Save(ctx, New(in))
	if err != nil {
		return Product{}, apperr.DataAccess("erro ao salvar produto", err)
	}

	log.Info().Str("product_id", saved.ID).Msg("product created")
	return saved, nil
}

// GetByID returns ok == false when no product has that id.
func (s *Service) GetByID(ctx context.Context, id string) (Product, bool, error) {
	if err := s.validateID(id); err != nil {
		return Product{}, false, err
	}

	p, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Product{}, false, apperr.DataAccess("erro ao buscar produto", err)
	}
	return p, ok, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.DataAccess("erro ao listar produtos", err)
	}
	if list == nil {
		list = []Product{}
	}
	return list, nil
}

// Update loads, replaces and writes back. ok == false means the product
// does not exist or vanished before the write landed.
func (s *Service) Update(ctx context.Context, id string, in Input) (Product, bool, error) {
	if err := s.validateID(id); err != nil {
		return Product{}, false, err
	}
	if err := validateInput(in); err != nil {
		return Product{}, false, err
	}

	existing, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Product{}, false, apperr.DataAccess("erro ao atualizar produto", err)
	}
	if !ok {
		return Product{}, false, nil
	}

	next := existing.WithChanges(in)
	if next.Equal(existing) {
		return existing, true, nil
	}

	stored, modified, err := s.repo.Update(ctx, next)
	if err != nil {
		return Product{}, false, apperr.DataAccess("erro ao atualizar produto", err)
	}
	if !modified {
		log.Warn().Str("product_id", id).Msg("product disappeared during update")
		return Product{}, false, nil
	}

	log.Info().Str("product_id", id).Msg("product updated")
	return stored, true, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.validateID(id); err != nil {
		return false, err
	}

	_, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, apperr.DataAccess("erro ao deletar produto", err)
	}
	if !ok {
		return false, apperr.NotFound("produto não encontrado com ID: %s", id)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, apperr.DataAccess("erro ao deletar produto", err)
	}

	log.Info().Str("product_id", id).Bool("deleted", deleted).Msg("product deleted")
	return deleted, nil
}

func (s *Service) validateID(id string) error {
	if strings.TrimSpace(id) == "" || !s.repo.ValidID(id) {
		return apperr.Invalid("ID do produto inválido")
	}
	return nil
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Invalid("nome do produto não pode ser vazio")
	}
	if in.Price == nil || !in.Price.IsPositive() {
		return apperr.Invalid("preço do produto deve ser maior que zero")
	}
	if priceDigits(*in.Price) > MaxPriceDigits {
		return apperr.Invalid(fmt.Sprintf("preço do produto excede %d dígitos significativos", MaxPriceDigits))
	}
	return nil
}

// priceDigits counts the digits needed to write d exactly, ignoring
// leading zeros and trailing fractional zeros.
func priceDigits(d decimal.Decimal) int {
	digits := strings.TrimLeft(strings.Replace(d.Abs().String(), ".", "", 1), "0")
	return len(digits)
}
