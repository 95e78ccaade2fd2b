package admin

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ballotbox/pkg/requestcontext"
	"ballotbox/pkg/testutil"
)

const adminToken = "secret-token"

func newGuarded(t *testing.T, verifier Verifier) (http.Handler, *string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var actor string
	h := RequireAdminToken(verifier, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = requestcontext.AdminActor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &actor
}

func TestRequireAdminToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminToken), bcrypt.MinCost)
	require.NoError(t, err)

	verifiers := map[string]Verifier{
		"static": NewVerifier(adminToken, ""),
		"hashed": NewVerifier("ignored", string(hash)),
	}
	for name, verifier := range verifiers {
		t.Run(name+" accepts valid token", func(t *testing.T) {
			h, actor := newGuarded(t, verifier)
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.Header.Set(HeaderToken, adminToken)
			req.Header.Set(HeaderActor, "registrar")

			rr := testutil.DoRequest(h, req)

			testutil.AssertStatus(t, rr, http.StatusNoContent)
			assert.Equal(t, "registrar", *actor)
		})

		t.Run(name+" rejects wrong token", func(t *testing.T) {
			h, _ := newGuarded(t, verifier)
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.Header.Set(HeaderToken, "wrong")

			rr := testutil.DoRequest(h, req)

			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})

		t.Run(name+" rejects missing token", func(t *testing.T) {
			h, _ := newGuarded(t, verifier)
			rr := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
			testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		})
	}
}

func TestDefaultActor(t *testing.T) {
	h, actor := newGuarded(t, StaticToken(adminToken))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderToken, adminToken)

	testutil.DoRequest(h, req)

	assert.Equal(t, defaultActor, *actor)
}

func TestEmptyStaticTokenNeverMatches(t *testing.T) {
	assert.False(t, StaticToken("").Verify(""))
	assert.False(t, HashedToken(nil).Verify("anything"))
}
