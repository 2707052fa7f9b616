package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	pkgAuth "github.com/andrevlins/pedidoflow/internal/pkg/auth"
)

type stubUserRepository struct {
	createFn     func(context.Context, string, string, string, model.Role) (*model.User, error)
	getByLoginFn func(context.Context, string) (*model.User, error)
	getByIDFn    func(context.Context, int64) (*model.User, error)
}

func (s stubUserRepository) Create(ctx context.Context, login, hash, name string, role model.Role) (*model.User, error) {
	return s.createFn(ctx, login, hash, name, role)
}

func (s stubUserRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return s.getByLoginFn(ctx, login)
}

func (s stubUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getByIDFn(ctx, id)
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }
func (plainHasher) Compare(hash, password string) error {
	if hash != "h:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newAuthTest(users stubUserRepository) *AuthUseCase {
	strategy := pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{})
	return NewAuthUseCase(users, plainHasher{}, strategy)
}

func TestRegisterIssuesTokenWithRole(t *testing.T) {
	uc := newAuthTest(stubUserRepository{createFn: func(ctx context.Context, login, hash, name string, role model.Role) (*model.User, error) {
		if login != "ana" || name != "Ana Souza" || role != model.RoleSeller {
			t.Fatalf("unexpected arguments %s %s %s", login, name, role)
		}
		return &model.User{ID: 7, Login: login, PasswordHash: hash, Name: name, Role: role}, nil
	}})

	usr, token, err := uc.Register(context.Background(), "ana", "segredo", "Ana Souza", model.RoleSeller)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.ID != 7 {
		t.Fatalf("unexpected user %+v", usr)
	}

	strategy := pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{})
	id, role, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("token must parse: %v", err)
	}
	if id != 7 || role != model.RoleSeller {
		t.Fatalf("unexpected claims %d %s", id, role)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	uc := newAuthTest(stubUserRepository{createFn: func(context.Context, string, string, string, model.Role) (*model.User, error) {
		t.Fatal("repository must not be reached")
		return nil, nil
	}})

	_, _, err := uc.Register(context.Background(), "ana", "segredo", "Ana", model.Role("diretor"))
	if !errors.Is(err, domainErrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	uc := newAuthTest(stubUserRepository{})
	if _, _, err := uc.Register(context.Background(), "", "x", "Ana", model.RoleSeller); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Register(context.Background(), "ana", "x", "  ", model.RoleSeller); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	uc := newAuthTest(stubUserRepository{getByLoginFn: func(ctx context.Context, login string) (*model.User, error) {
		return &model.User{ID: 1, Login: login, PasswordHash: "h:outra", Role: model.RoleManager}, nil
	}})

	_, _, err := uc.Authenticate(context.Background(), "mario", "segredo")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownLogin(t *testing.T) {
	uc := newAuthTest(stubUserRepository{getByLoginFn: func(context.Context, string) (*model.User, error) {
		return nil, domainErrors.ErrNotFound
	}})

	_, _, err := uc.Authenticate(context.Background(), "ghost", "segredo")
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCurrentUserResolvesRecord(t *testing.T) {
	uc := newAuthTest(stubUserRepository{getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, Name: "Carla", Role: model.RoleFinancial}, nil
	}})
	strategy := pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{})
	token, _ := strategy.IssueToken(3, model.RoleFinancial)

	usr, err := uc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Name != "Carla" || usr.Role != model.RoleFinancial {
		t.Fatalf("unexpected user %+v", usr)
	}
}

func TestCurrentUserRejectsStaleRoleClaim(t *testing.T) {
	uc := newAuthTest(stubUserRepository{getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return &model.User{ID: id, Role: model.RoleSeller}, nil
	}})
	strategy := pkgAuth.NewHMACStrategy("test-secret", pkgAuth.Options{})
	token, _ := strategy.IssueToken(3, model.RoleFinancial)

	if _, err := uc.CurrentUser(context.Background(), token); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCurrentUserEmptyToken(t *testing.T) {
	uc := newAuthTest(stubUserRepository{})
	if _, err := uc.CurrentUser(context.Background(), ""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
