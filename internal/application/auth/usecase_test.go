package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncerqueira/estoquebar-api/internal/application/auth"
	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[string]*entity.User // id -> user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int, error) {
	return len(r.users), nil
}

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "estoquebar-test",
	})
}

func registerUser(t *testing.T, uc *auth.AuthUseCase, email, password string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Teste",
	})
	require.NoError(t, err)
	return user
}

// O primeiro usuário do sistema vira dono (bootstrap); os seguintes entram
// como funcionario.
func TestRegister_PrimeiroUsuarioViraDono(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())

	first := registerUser(t, uc, "dona@bar.com", "senha-segura")
	assert.Equal(t, entity.RoleDono, first.Role)

	second := registerUser(t, uc, "garcom@bar.com", "senha-segura")
	assert.Equal(t, entity.RoleFuncionario, second.Role)
}

func TestRegister_EmailDuplicadoRejeitado(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	registerUser(t, uc, "dona@bar.com", "senha-segura")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "dona@bar.com",
		Password: "outra-senha",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredenciaisValidasGeramToken(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	registerUser(t, uc, "dona@bar.com", "senha-segura")

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "dona@bar.com",
		Password: "senha-segura",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleDono, out.User.Role)
}

// Email desconhecido e senha errada devolvem o mesmo erro: a resposta não pode
// revelar quais emails têm cadastro.
func TestLogin_EmailDesconhecidoESenhaErradaRespondemIgual(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	registerUser(t, uc, "dona@bar.com", "senha-segura")

	_, errUnknown := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ninguem@bar.com",
		Password: "tanto-faz",
	})
	_, errWrongPass := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "dona@bar.com",
		Password: "senha-errada",
	})

	assert.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPass, domain.ErrUnauthorized)
	assert.Equal(t, errUnknown, errWrongPass, "as duas falhas de credencial são indistinguíveis")
}

func TestLogin_UsuarioInativoBloqueado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	created := registerUser(t, uc, "ex-garcom@bar.com", "senha-segura")

	stored := repo.users[created.ID]
	stored.Status = "inactive"

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ex-garcom@bar.com",
		Password: "senha-segura",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
