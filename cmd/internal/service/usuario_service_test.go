package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"solartrack/cmd/internal/contract"
	"solartrack/cmd/internal/domain/entity"
	"solartrack/cmd/internal/utils"
	"solartrack/cmd/internal/utils/apierror"
)

type fakeUsuarioRepo struct {
	porID map[string]*entity.Usuario
}

func (f *fakeUsuarioRepo) FindAll() ([]*entity.Usuario, error) {
	all := make([]*entity.Usuario, 0, len(f.porID))
	for _, u := range f.porID {
		all = append(all, u)
	}
	return all, nil
}

func (f *fakeUsuarioRepo) FindByID(id string) (*entity.Usuario, error) {
	return f.porID[id], nil
}

func (f *fakeUsuarioRepo) FindActiveByID(id string) (*entity.Usuario, error) {
	u := f.porID[id]
	if u == nil || !u.Ativo {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	for _, u := range f.porID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsuarioRepo) Count() (int64, error) { return int64(len(f.porID)), nil }

func (f *fakeUsuarioRepo) Save(u *entity.Usuario) error {
	f.porID[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) Delete(u *entity.Usuario) error {
	delete(f.porID, u.ID)
	return nil
}

var usuarioTestSecret = []byte("usuario-test-secret")

func senhaHash(t *testing.T, senha string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newUsuarioFixture(t *testing.T) (*DefaultUsuarioService, *fakeUsuarioRepo) {
	t.Helper()
	repo := &fakeUsuarioRepo{porID: map[string]*entity.Usuario{
		"u-admin": {
			ID: "u-admin", Nome: "Ana", Email: "ana@example.com",
			SenhaHash: senhaHash(t, "segredo123"),
			Role:      entity.RoleAdministrador, Ativo: true,
		},
		"u-fiscal": {
			ID: "u-fiscal", Nome: "Bruno", Email: "bruno@example.com",
			SenhaHash: senhaHash(t, "outrasenha"),
			Role:      entity.RoleFiscal, Ativo: true,
		},
		"u-inativo": {
			ID: "u-inativo", Nome: "Carla", Email: "carla@example.com",
			SenhaHash: senhaHash(t, "senhacarla"),
			Role:      entity.RoleUsuario, Ativo: false,
		},
	}}
	svc := NewUsuarioService(repo, NewHistoricoService(&fakeHistoricoRepo{}), newTestValidator(t), usuarioTestSecret)
	return svc, repo
}

func TestLoginIssuesSessionToken(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	resp, apierr := svc.Login(&contract.LoginRequest{Email: "ana@example.com", Senha: "segredo123"})
	require.Nil(t, apierr)

	claims, err := utils.ParseSessionToken(usuarioTestSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-admin", claims.Subject)
	assert.Equal(t, entity.RoleAdministrador, claims.Role)
	assert.Equal(t, "ana@example.com", resp.Usuario.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	_, apierr := svc.Login(&contract.LoginRequest{Email: "ana@example.com", Senha: "errada"})
	assert.Equal(t, apierror.CredentialsMismatchError, apierr)
}

func TestLoginRejectsInactiveAccountLikeBadPassword(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	_, apierr := svc.Login(&contract.LoginRequest{Email: "carla@example.com", Senha: "senhacarla"})
	assert.Equal(t, apierror.CredentialsMismatchError, apierr)
}

func TestCreateUsuarioRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUsuarioFixture(t)

	_, apierr := svc.CreateUsuario(nil, &contract.UsuarioRequest{
		Nome: "Outra Ana", Email: "ana@example.com", Senha: "qualquer123", Role: entity.RoleUsuario,
	})
	assert.Equal(t, apierror.ExistingEmailError, apierr)
}

func TestUpdateUsuarioKeepsLastAdmin(t *testing.T) {
	svc, repo := newUsuarioFixture(t)

	fiscal := entity.RoleFiscal
	_, apierr := svc.UpdateUsuario(nil, "u-admin", &contract.UpdateUsuarioRequest{Role: &fiscal})
	require.NotNil(t, apierr)
	assert.Equal(t, 409, apierr.Code())
	assert.Equal(t, entity.RoleAdministrador, repo.porID["u-admin"].Role)

	inativo := false
	_, apierr = svc.UpdateUsuario(nil, "u-admin", &contract.UpdateUsuarioRequest{Ativo: &inativo})
	require.NotNil(t, apierr)
	assert.Equal(t, 409, apierr.Code())
}

func TestUpdateUsuarioDemotesAdminWhenAnotherRemains(t *testing.T) {
	svc, repo := newUsuarioFixture(t)

	repo.porID["u-fiscal"].Role = entity.RoleAdministrador

	fiscal := entity.RoleFiscal
	resp, apierr := svc.UpdateUsuario(nil, "u-admin", &contract.UpdateUsuarioRequest{Role: &fiscal})
	require.Nil(t, apierr)
	assert.Equal(t, entity.RoleFiscal, resp.Role)
}
