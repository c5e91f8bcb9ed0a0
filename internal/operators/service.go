package operators

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	pkgauth "github.com/kittohq/kitto-backend/pkg/auth"
	"github.com/kittohq/kitto-backend/pkg/config"
	"github.com/kittohq/kitto-backend/pkg/db"
	"github.com/kittohq/kitto-backend/pkg/db/models"
	"github.com/kittohq/kitto-backend/pkg/enums"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	pkgpagination "github.com/kittohq/kitto-backend/pkg/pagination"
	"github.com/kittohq/kitto-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

var mobileRe = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

type operatorsRepository interface {
	Create(ctx context.Context, operator *models.Operator) (*models.Operator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error)
	FindByMobile(ctx context.Context, mobile string) (*models.Operator, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	List(ctx context.Context, cursor *pkgpagination.Cursor, limit int) ([]models.Operator, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes operator onboarding, authentication, and profile operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, operatorID uuid.UUID) (*OperatorView, error)
	UpdateProfile(ctx context.Context, operatorID uuid.UUID, req UpdateProfileRequest) (*OperatorView, error)
	ListOperators(ctx context.Context, params pkgpagination.Params) (*OperatorList, error)
	DeleteOperator(ctx context.Context, operatorID uuid.UUID) error
}

type service struct {
	repo        operatorsRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an operators service.
type ServiceParams struct {
	Repo           operatorsRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an operators service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("operators repository required")
	}
	return &service{
		repo:        params.Repo,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	mobile := strings.TrimSpace(req.MobileNumber)
	if !mobileRe.MatchString(mobile) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mobile_number must be 9 to 15 digits")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name is required")
	}
	if strings.TrimSpace(req.ShopName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_name is required")
	}
	if len(req.Password) < 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	platforms, err := normalizePlatforms(req.SellingPlatforms)
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	operator := &models.Operator{
		FullName:         strings.TrimSpace(req.FullName),
		MobileNumber:     mobile,
		WhatsappNumber:   trimPtr(req.WhatsappNumber),
		ShopName:         strings.TrimSpace(req.ShopName),
		City:             strings.TrimSpace(req.City),
		SellingPlatforms: pq.StringArray(platforms),
		PasswordHash:     passwordHash,
	}

	created, err := s.repo.Create(ctx, operator)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_operators_mobile_number") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "mobile number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create operator")
	}

	return s.buildAuthResponse(created)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	mobile := strings.TrimSpace(req.MobileNumber)
	if mobile == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	operator, err := s.repo.FindByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup operator")
	}

	valid, err := security.VerifyPassword(req.Password, operator.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return s.buildAuthResponse(operator)
}

func (s *service) GetProfile(ctx context.Context, operatorID uuid.UUID) (*OperatorView, error) {
	operator, err := s.findOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	view := FromModel(operator)
	return &view, nil
}

func (s *service) UpdateProfile(ctx context.Context, operatorID uuid.UUID, req UpdateProfileRequest) (*OperatorView, error) {
	if _, err := s.findOperator(ctx, operatorID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name must not be empty")
		}
		updates["full_name"] = name
	}
	if req.WhatsappNumber != nil {
		updates["whatsapp_number"] = strings.TrimSpace(*req.WhatsappNumber)
	}
	if req.ShopName != nil {
		shop := strings.TrimSpace(*req.ShopName)
		if shop == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_name must not be empty")
		}
		updates["shop_name"] = shop
	}
	if req.City != nil {
		updates["city"] = strings.TrimSpace(*req.City)
	}
	if req.SellingPlatforms != nil {
		platforms, err := normalizePlatforms(req.SellingPlatforms)
		if err != nil {
			return nil, err
		}
		updates["selling_platforms"] = pq.StringArray(platforms)
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, operatorID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update operator")
	}

	operator, err := s.findOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	view := FromModel(operator)
	return &view, nil
}

func (s *service) ListOperators(ctx context.Context, params pkgpagination.Params) (*OperatorList, error) {
	limit := pkgpagination.NormalizeLimit(params.Limit)

	var cursor *pkgpagination.Cursor
	if params.Cursor != "" {
		parsed, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	rows, err := s.repo.List(ctx, cursor, pkgpagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list operators")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	views := make([]OperatorView, len(rows))
	for i := range rows {
		views[i] = FromModel(&rows[i])
	}

	return &OperatorList{
		Operators:  views,
		NextCursor: nextCursor,
	}, nil
}

func (s *service) DeleteOperator(ctx context.Context, operatorID uuid.UUID) error {
	operator, err := s.findOperator(ctx, operatorID)
	if err != nil {
		return err
	}
	if operator.IsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin accounts cannot be deleted")
	}

	if err := s.repo.Delete(ctx, operatorID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete operator")
	}
	return nil
}

func (s *service) findOperator(ctx context.Context, operatorID uuid.UUID) (*models.Operator, error) {
	if operatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator identity missing")
	}
	operator, err := s.repo.FindByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup operator")
	}
	return operator, nil
}

func (s *service) buildAuthResponse(operator *models.Operator) (*AuthResponse, error) {
	role := enums.ActorRoleOperator
	if operator.IsAdmin {
		role = enums.ActorRoleAdmin
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		OperatorID: operator.ID,
		Role:       role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken: token,
		Operator:    FromModel(operator),
	}, nil
}

func normalizePlatforms(platforms []string) ([]string, error) {
	if len(platforms) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling_platforms must not be empty")
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(platforms))
	for _, raw := range platforms {
		value := strings.ToLower(strings.TrimSpace(raw))
		if _, err := enums.ParseOrderSource(value); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown selling platform %q", raw))
		}
		if seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out, nil
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
