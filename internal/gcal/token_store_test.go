package gcal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeToken(t *testing.T) {
	expiry := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	newExpiry := expiry.Add(time.Hour)

	tests := []struct {
		name string
		old  *StoredToken
		new  *StoredToken
		want StoredToken
	}{
		{
			name: "no existing token",
			old:  nil,
			new:  &StoredToken{AccessToken: "a1", RefreshToken: "r1", Expiry: expiry},
			want: StoredToken{AccessToken: "a1", RefreshToken: "r1", Expiry: expiry},
		},
		{
			name: "new fields win",
			old:  &StoredToken{AccessToken: "a1", RefreshToken: "r1", Expiry: expiry},
			new:  &StoredToken{AccessToken: "a2", RefreshToken: "r2", Expiry: newExpiry},
			want: StoredToken{AccessToken: "a2", RefreshToken: "r2", Expiry: newExpiry},
		},
		{
			name: "refresh token survives a refresh response that omits it",
			old:  &StoredToken{AccessToken: "a1", RefreshToken: "r1", Expiry: expiry},
			new:  &StoredToken{AccessToken: "a2", Expiry: newExpiry},
			want: StoredToken{AccessToken: "a2", RefreshToken: "r1", Expiry: newExpiry},
		},
		{
			name: "scopes taken from new token when present",
			old:  &StoredToken{AccessToken: "a1", Scopes: []string{"old.scope"}},
			new:  &StoredToken{AccessToken: "a2", Scopes: []string{"new.scope"}},
			want: StoredToken{AccessToken: "a2", Scopes: []string{"new.scope"}},
		},
		{
			name: "scopes survive when new token has none",
			old:  &StoredToken{AccessToken: "a1", Scopes: []string{"old.scope"}},
			new:  &StoredToken{AccessToken: "a2"},
			want: StoredToken{AccessToken: "a2", Scopes: []string{"old.scope"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeToken(tt.old, tt.new)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestTokenStoreSaveMergesWithExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewTokenStore(path)

	err := store.Save(&StoredToken{
		AccessToken:  "first",
		RefreshToken: "refresh-1",
		Expiry:       time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// A refresh response usually carries no refresh token.
	err = store.Save(&StoredToken{
		AccessToken: "second",
		Expiry:      time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "second", loaded.AccessToken)
	assert.Equal(t, "refresh-1", loaded.RefreshToken)
	assert.Equal(t, time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC), loaded.Expiry)
}

func TestTokenStoreLoadMissingFile(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "missing.json"))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestTokenStoreLoadNormalizesExpiryToUTC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	data := `{"access_token":"a1","expiry":"2026-01-10T14:00:00+02:00"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	loaded, err := NewTokenStore(path).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, time.UTC, loaded.Expiry.Location())
	assert.True(t, loaded.Expiry.Equal(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)))
}
