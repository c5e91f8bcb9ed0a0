package operators

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittohq/kitto-backend/pkg/config"
	"github.com/kittohq/kitto-backend/pkg/db/models"
	pkgerrors "github.com/kittohq/kitto-backend/pkg/errors"
	pkgpagination "github.com/kittohq/kitto-backend/pkg/pagination"
	"github.com/kittohq/kitto-backend/pkg/security"
)

type stubOperatorsRepo struct {
	createErr error
	created   *models.Operator
	byMobile  *models.Operator
	mobileErr error
	byID      *models.Operator
	idErr     error
	updates   map[string]any
	deleted   []uuid.UUID
}

func (s *stubOperatorsRepo) Create(ctx context.Context, operator *models.Operator) (*models.Operator, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	operator.ID = uuid.New()
	s.created = operator
	return operator, nil
}

func (s *stubOperatorsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Operator, error) {
	if s.idErr != nil {
		return nil, s.idErr
	}
	return s.byID, nil
}

func (s *stubOperatorsRepo) FindByMobile(ctx context.Context, mobile string) (*models.Operator, error) {
	if s.mobileErr != nil {
		return nil, s.mobileErr
	}
	return s.byMobile, nil
}

func (s *stubOperatorsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubOperatorsRepo) List(ctx context.Context, cursor *pkgpagination.Cursor, limit int) ([]models.Operator, error) {
	return nil, nil
}

func (s *stubOperatorsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "kitto",
		ExpirationMinutes: 30,
	}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
	return jwtCfg, pwCfg
}

func newTestService(t *testing.T, repo *stubOperatorsRepo) Service {
	t.Helper()

	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		Repo:           repo,
		JWTConfig:      jwtCfg,
		PasswordConfig: pwCfg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		FullName:         "Nimali Perera",
		MobileNumber:     "0771234567",
		ShopName:         "Nimali Fashion",
		City:             "Negombo",
		SellingPlatforms: []string{"facebook", "Instagram", "facebook"},
		Password:         "secret123",
	}
}

func TestRegisterIssuesTokenAndNormalizesPlatforms(t *testing.T) {
	repo := &stubOperatorsRepo{}
	svc := newTestService(t, repo)

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if len(repo.created.SellingPlatforms) != 2 {
		t.Fatalf("expected deduped platforms, got %v", repo.created.SellingPlatforms)
	}
	if repo.created.SellingPlatforms[1] != "instagram" {
		t.Fatalf("expected lowercased platform, got %q", repo.created.SellingPlatforms[1])
	}
	if repo.created.PasswordHash == "secret123" {
		t.Fatal("password must be hashed")
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := newTestService(t, &stubOperatorsRepo{})

	cases := []func(*RegisterRequest){
		func(r *RegisterRequest) { r.MobileNumber = "abc" },
		func(r *RegisterRequest) { r.MobileNumber = "123" },
		func(r *RegisterRequest) { r.FullName = "  " },
		func(r *RegisterRequest) { r.Password = "short" },
		func(r *RegisterRequest) { r.SellingPlatforms = nil },
		func(r *RegisterRequest) { r.SellingPlatforms = []string{"myspace"} },
	}
	for i, mutate := range cases {
		req := validRegisterRequest()
		mutate(&req)
		_, err := svc.Register(context.Background(), req)
		if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	_, pwCfg := testConfigs()
	hash, err := security.HashPassword("secret123", pwCfg)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	repo := &stubOperatorsRepo{
		byMobile: &models.Operator{
			ID:           uuid.New(),
			FullName:     "Nimali Perera",
			MobileNumber: "0771234567",
			PasswordHash: hash,
		},
	}
	svc := newTestService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		MobileNumber: "0771234567",
		Password:     "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		MobileNumber: "0771234567",
		Password:     "wrong",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownMobileIsUnauthorized(t *testing.T) {
	repo := &stubOperatorsRepo{mobileErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		MobileNumber: "0770000000",
		Password:     "whatever",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDeleteOperatorRefusesAdmins(t *testing.T) {
	admin := &models.Operator{ID: uuid.New(), IsAdmin: true}
	repo := &stubOperatorsRepo{byID: admin}
	svc := newTestService(t, repo)

	err := svc.DeleteOperator(context.Background(), admin.ID)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("delete should not reach repository")
	}
}

func TestUpdateProfileBuildsPartialUpdates(t *testing.T) {
	operator := &models.Operator{ID: uuid.New(), FullName: "Nimali"}
	repo := &stubOperatorsRepo{byID: operator}
	svc := newTestService(t, repo)

	shop := " New Shop "
	if _, err := svc.UpdateProfile(context.Background(), operator.ID, UpdateProfileRequest{
		ShopName:         &shop,
		SellingPlatforms: []string{"tiktok"},
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if repo.updates["shop_name"] != "New Shop" {
		t.Fatalf("expected trimmed shop name, got %v", repo.updates["shop_name"])
	}
	if _, ok := repo.updates["selling_platforms"]; !ok {
		t.Fatal("expected selling_platforms update")
	}
	if _, ok := repo.updates["full_name"]; ok {
		t.Fatal("full_name should not be updated")
	}
}
