package auth

import (
	"time"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/repository"
)

// CompanyUseCase alta y consulta de empresas (tenants).
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra una empresa.
func (uc *CompanyUseCase) Create(name, taxID string) (*entity.Company, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Company{
		Name:      name,
		TaxID:     taxID,
		CreatedAt: time.Now(),
	}
	if err := uc.companyRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID devuelve una empresa.
func (uc *CompanyUseCase) GetByID(id string) (*entity.Company, error) {
	c, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista empresas.
func (uc *CompanyUseCase) List(limit, offset int) ([]*entity.Company, error) {
	return uc.companyRepo.List(limit, offset)
}
