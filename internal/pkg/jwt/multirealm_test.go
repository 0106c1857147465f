package jwt

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRealm struct {
	mock.Mock
	name string
}

func (m *mockRealm) Name() string { return m.name }

func (m *mockRealm) Verify(ctx context.Context, token string) (*Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*Claims)
	return claims, args.Error(1)
}

func realmErr(realm string, kind error) error {
	return &RealmError{Realm: realm, Err: fmt.Errorf("%w: test", kind)}
}

func TestMultiRealmVerifierOrder(t *testing.T) {
	ctx := context.Background()
	bClaims := &Claims{PreferredUsername: "svc"}

	a := &mockRealm{name: "user"}
	b := &mockRealm{name: "service"}
	c := &mockRealm{name: "spare"}
	a.On("Verify", ctx, "tok").Return(nil, realmErr("user", ErrTokenInvalid))
	b.On("Verify", ctx, "tok").Return(bClaims, nil)

	v := NewMultiRealmVerifier(a, b, c)
	got, err := v.Verify(ctx, "tok")

	require.NoError(t, err)
	assert.Equal(t, "service", got.Realm)
	assert.Same(t, bClaims, got.Claims)
	a.AssertExpectations(t)
	b.AssertExpectations(t)
	c.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestMultiRealmVerifierExpiryPrecedence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		order []error
	}{
		{"expired last", []error{ErrTokenInvalid, ErrTokenExpired}},
		{"expired first", []error{ErrTokenExpired, ErrTokenInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var realms []TokenVerifier
			for i, kind := range tt.order {
				r := &mockRealm{name: fmt.Sprintf("realm-%d", i)}
				r.On("Verify", ctx, "tok").Return(nil, realmErr(r.name, kind))
				realms = append(realms, r)
			}

			_, err := NewMultiRealmVerifier(realms...).Verify(ctx, "tok")
			assert.ErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestMultiRealmVerifierFirstFailure(t *testing.T) {
	ctx := context.Background()
	a := &mockRealm{name: "user"}
	b := &mockRealm{name: "service"}
	a.On("Verify", ctx, "tok").Return(nil, realmErr("user", ErrTokenInvalid))
	b.On("Verify", ctx, "tok").Return(nil, realmErr("service", ErrTokenInvalid))

	_, err := NewMultiRealmVerifier(a, b).Verify(ctx, "tok")

	var re *RealmError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "user", re.Realm)
}

func TestMultiRealmVerifierNoRealms(t *testing.T) {
	_, err := NewMultiRealmVerifier().Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNoRealmsConfigured)
}

func TestLoadAndBuildSkipsUnconfiguredRealms(t *testing.T) {
	key := newKey(t)
	v, err := LoadAndBuild(Config{
		Realms: []RealmConfig{
			{Name: "user", Issuer: userIssuer, PublicKeyPath: writePEM(t, &key.PublicKey)},
			{Name: "service", Issuer: ""},
		},
	}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, v.Realms())

	got, err := v.Verify(context.Background(), signToken(t, key, "", newClaims(userIssuer, time.Now().Add(time.Hour))))
	require.NoError(t, err)
	assert.Equal(t, "user", got.Realm)
}

func TestLoadAndBuildBadKeyPath(t *testing.T) {
	_, err := LoadAndBuild(Config{
		Realms: []RealmConfig{{Name: "user", Issuer: userIssuer, PublicKeyPath: "/does/not/exist.pem"}},
	}, nil, zap.NewNop())
	assert.Error(t, err)
}
