package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventqueue/pkg/logger"
	"github.com/dmitrymomot/eventqueue/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, header string) (seen string, rec *httptest.ResponseRecorder) {
	t.Helper()

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/tasks/sleep", nil)
	if header != "" {
		req.Header.Set(requestid.Header, header)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid when missing", func(t *testing.T) {
		t.Parallel()

		seen, rec := serve(t, requestid.Middleware, "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(requestid.Header))
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		t.Parallel()

		seen, rec := serve(t, requestid.Middleware, "client-req_42")
		assert.Equal(t, "client-req_42", seen)
		assert.Equal(t, "client-req_42", rec.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed ids", func(t *testing.T) {
		t.Parallel()

		mw := requestid.New(requestid.WithGenerator(func() string { return "generated" }))
		for _, bad := range []string{"has space", "semi;colon", strings.Repeat("a", 129)} {
			seen, rec := serve(t, mw, bad)
			assert.Equal(t, "generated", seen, bad)
			assert.Equal(t, "generated", rec.Header().Get(requestid.Header))
		}
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Empty(t, requestid.FromContext(nil))
	assert.Equal(t, "abc", requestid.FromContext(requestid.WithContext(context.Background(), "abc")))
}

func TestLogExtractor(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithFormat(logger.FormatText),
		logger.WithContextExtractors(requestid.LogExtractor()),
	)

	log.InfoContext(context.Background(), "no id")
	assert.NotContains(t, buf.String(), "request_id")

	log.InfoContext(requestid.WithContext(context.Background(), "req-7"), "with id")
	assert.Contains(t, buf.String(), "request_id=req-7")
}
