package customers

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/registration-service/internal/apperr"
	"github.com/sangkips/registration-service/internal/metrics"
	"github.com/sangkips/registration-service/internal/notify"
)

// Topic receives every newly created customer.
const Topic = "clientes-topic"

type Service struct {
	repo     Repository
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

func NewService(repo Repository, notifier notify.Notifier, m *metrics.Metrics) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{repo: repo, notifier: notifier, metrics: m}
}

// Create validates and persists a customer, then publishes it to Topic.
// The publish outcome never affects the result.
func (s *Service) Create(ctx context.Context, in Input) (Customer, error) {
	if err := validateInput(in); err != nil {
		return Customer{}, err
	}

	saved, err := s.repo.Save(ctx, New(in))
	if err != nil {
		return Customer{}, apperr.DataAccess("erro ao salvar cliente", err)
	}

	s.metrics.IncCustomersCreated()
	log.Info().Int64("customer_id", saved.ID).Msg("customer created")

	s.notifier.Publish(ctx, Topic, saved)

	return saved, nil
}

// GetByID returns ok == false when no customer has that id.
func (s *Service) GetByID(ctx context.Context, id int64) (Customer, bool, error) {
	if err := validateID(id); err != nil {
		return Customer{}, false, err
	}

	c, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Customer{}, false, apperr.DataAccess("erro ao buscar cliente", err)
	}
	return c, ok, nil
}

// ListAll returns every customer ordered by id.
func (s *Service) ListAll(ctx context.Context) ([]Customer, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.DataAccess("erro ao listar clientes", err)
	}
	if list == nil {
		list = []Customer{}
	}
	return list, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Customer, error) {
	if err := validateID(id); err != nil {
		return Customer{}, err
	}
	if err := validateInput(in); err != nil {
		return Customer{}, err
	}

	existing, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Customer{}, apperr.DataAccess("erro ao atualizar cliente", err)
	}
	if !ok {
		return Customer{}, apperr.NotFound("cliente não encontrado com ID: %d", id)
	}

	updated, err := s.repo.Update(ctx, existing.WithChanges(in))
	if err != nil {
		return Customer{}, apperr.DataAccess("erro ao atualizar cliente", err)
	}

	log.Info().Int64("customer_id", id).Msg("customer updated")
	return updated, nil
}

// UpdateEmail replaces only the email column.
func (s *Service) UpdateEmail(ctx context.Context, id int64, email string) (Customer, error) {
	if err := validateID(id); err != nil {
		return Customer{}, err
	}
	if !validEmail(email) {
		return Customer{}, apperr.Invalid("o novo e-mail fornecido é inválido")
	}

	existing, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Customer{}, apperr.DataAccess("erro ao atualizar e-mail", err)
	}
	if !ok {
		return Customer{}, apperr.NotFound("cliente não encontrado com ID: %d", id)
	}

	if err := s.repo.UpdateEmail(ctx, id, email); err != nil {
		return Customer{}, apperr.DataAccess("erro ao atualizar e-mail", err)
	}

	log.Info().Int64("customer_id", id).Msg("customer email updated")
	return existing.WithEmail(email), nil
}

// Delete fails with a not-found validation error when nothing matches id.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}

	_, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, apperr.DataAccess("erro ao deletar cliente", err)
	}
	if !ok {
		return false, apperr.NotFound("cliente não encontrado com ID: %d", id)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, apperr.DataAccess("erro ao deletar cliente", err)
	}

	log.Info().Int64("customer_id", id).Bool("deleted", deleted).Msg("customer deleted")
	return deleted, nil
}

func validateID(id int64) error {
	if id <= 0 {
		return apperr.Invalid("ID deve ser maior que zero")
	}
	return nil
}

func validateInput(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Invalid("nome do cliente não pode ser vazio")
	}
	if !validEmail(in.Email) {
		return apperr.Invalid("email inválido")
	}
	return nil
}

func validEmail(email string) bool {
	return strings.TrimSpace(email) != "" && strings.Contains(email, "@")
}
