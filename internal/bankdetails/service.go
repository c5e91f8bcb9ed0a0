package bankdetails

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/db"
	"github.com/kittohq/kitto-backend/pkg/db/models"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
)

type bankDetailsRepository interface {
	Create(ctx context.Context, details *models.BankDetails) (*models.BankDetails, error)
	FindByOperator(ctx context.Context, operatorID uuid.UUID) (*models.BankDetails, error)
	Update(ctx context.Context, operatorID uuid.UUID, updates map[string]any) error
	ExistsForOperator(ctx context.Context, operatorID uuid.UUID) (bool, error)
}

// Service exposes the single-row-per-operator bank details workflow.
type Service interface {
	Upsert(ctx context.Context, operatorID uuid.UUID, req UpsertRequest) (*BankDetailsView, error)
	Get(ctx context.Context, operatorID uuid.UUID) (*BankDetailsView, error)
}

type service struct {
	repo bankDetailsRepository
}

// NewService builds a bank details service backed by the provided repository.
func NewService(repo bankDetailsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bank details repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Upsert(ctx context.Context, operatorID uuid.UUID, req UpsertRequest) (*BankDetailsView, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}

	bankName := strings.TrimSpace(req.BankName)
	holder := strings.TrimSpace(req.AccountHolderName)
	account := strings.TrimSpace(req.AccountNumber)
	branch := strings.TrimSpace(req.BranchName)
	if bankName == "" || holder == "" || account == "" || branch == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank_name, account_holder_name, account_number, and branch_name are required")
	}

	existing, err := s.repo.FindByOperator(ctx, operatorID)
	switch {
	case err == nil:
		updates := map[string]any{
			"bank_name":           bankName,
			"account_holder_name": holder,
			"account_number":      account,
			"branch_name":         branch,
		}
		if err := s.repo.Update(ctx, operatorID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bank details")
		}
		existing.BankName = bankName
		existing.AccountHolderName = holder
		existing.AccountNumber = account
		existing.BranchName = branch
		view := toView(existing)
		return &view, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		created, err := s.repo.Create(ctx, &models.BankDetails{
			OperatorID:        operatorID,
			BankName:          bankName,
			AccountHolderName: holder,
			AccountNumber:     account,
			BranchName:        branch,
		})
		if err != nil {
			// A concurrent insert for the same operator loses to the unique index.
			if db.IsUniqueViolation(err, "idx_bank_details_operator") {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "bank details already exist for operator")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bank details")
		}
		view := toView(created)
		return &view, nil

	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup bank details")
	}
}

func (s *service) Get(ctx context.Context, operatorID uuid.UUID) (*BankDetailsView, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}

	details, err := s.repo.FindByOperator(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bank details not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup bank details")
	}

	view := toView(details)
	return &view, nil
}

func toView(details *models.BankDetails) BankDetailsView {
	return BankDetailsView{
		ID:                details.ID,
		OperatorID:        details.OperatorID,
		BankName:          details.BankName,
		AccountHolderName: details.AccountHolderName,
		AccountNumber:     details.AccountNumber,
		BranchName:        details.BranchName,
		UpdatedAt:         details.UpdatedAt,
	}
}
