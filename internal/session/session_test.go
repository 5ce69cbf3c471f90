package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/config"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

func sampleRecord() Record {
	return Record{
		BaseURL: "http://localhost:5000",
		Session: gateway.Session{
			Cookies: []gateway.Cookie{{Name: "token", Value: "abc", Path: "/"}},
		},
		SavedAt: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, sampleRecord()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), got)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_RoundTripWithTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	key := RedisKey("http://LOCALHOST:5000/")
	assert.Equal(t, "clinicctl:session:http://localhost:5000", key)

	store := NewRedisStore(client, key, time.Hour)
	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, sampleRecord()))
	assert.Equal(t, time.Hour, mr.TTL(key))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(), got)

	mr.FastForward(2 * time.Hour)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save(ctx, sampleRecord()))
	require.NoError(t, store.Clear(ctx))
	assert.False(t, mr.Exists(key))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	fileCfg := &config.Config{SessionStore: "file", SessionFile: filepath.Join(t.TempDir(), "s.json")}
	st, err := Open(ctx, fileCfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)

	redisCfg := &config.Config{SessionStore: "redis", RedisAddr: mr.Addr(), APIBaseURL: "http://x", SessionTTL: time.Minute}
	st, err = Open(ctx, redisCfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, st)

	_, err = Open(ctx, &config.Config{SessionStore: "s3"})
	assert.Error(t, err)

	_, err = Open(ctx, &config.Config{SessionStore: "redis", RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRecordFor(t *testing.T) {
	rec := sampleRecord()
	s, ok := rec.For("http://localhost:5000/")
	require.True(t, ok)
	assert.Equal(t, rec.Session, s)

	_, ok = rec.For("https://api.clinic.test")
	assert.False(t, ok)

	_, ok = Record{BaseURL: "http://localhost:5000"}.For("http://localhost:5000")
	assert.False(t, ok, "empty session")
}

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
	require.NoError(t, err)
	return tok
}

func TestDecodeIdentity(t *testing.T) {
	exp := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	tok := signedToken(t, Claims{
		UserID: "7",
		Email:  "ana@clinic.test",
		Role:   clinic.RoleDoctor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	id, err := DecodeIdentity(gateway.Session{Cookies: []gateway.Cookie{{Name: TokenCookie, Value: tok}}})
	require.NoError(t, err)
	assert.Equal(t, clinic.ID("7"), id.UserID)
	assert.Equal(t, clinic.RoleDoctor, id.Role)
	assert.Equal(t, "ana@clinic.test", id.Email)
	assert.True(t, id.ExpiresAt.Equal(exp))
	assert.False(t, id.Expired(exp.Add(-time.Minute)))
	assert.True(t, id.Expired(exp))
}

func TestDecodeIdentity_SubjectFallbackAndBearerPreferred(t *testing.T) {
	bearer := signedToken(t, jwt.RegisteredClaims{Subject: "42"})
	cookie := signedToken(t, Claims{UserID: "1"})

	id, err := DecodeIdentity(gateway.Session{
		Token:   bearer,
		Cookies: []gateway.Cookie{{Name: TokenCookie, Value: cookie}},
	})
	require.NoError(t, err)
	assert.Equal(t, clinic.ID("42"), id.UserID)
	assert.True(t, id.ExpiresAt.IsZero())
	assert.False(t, id.Expired(time.Now()))
}

func TestDecodeIdentity_Errors(t *testing.T) {
	_, err := DecodeIdentity(gateway.Session{})
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = DecodeIdentity(gateway.Session{Token: "not-a-jwt"})
	assert.Error(t, err)
}
