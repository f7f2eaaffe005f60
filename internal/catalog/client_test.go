package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodsearch/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestSearchSendsEscapedQuery(t *testing.T) {
	var gotQuery, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		gotQuery = r.URL.Query().Get("search")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"phone","brand":"Acme","price":199.9,"extra":"ignored"}]`))
	})

	items, reqID, err := c.SearchWithID(context.Background(), "pho & co")
	require.NoError(t, err)
	assert.Equal(t, "pho & co", gotQuery)
	assert.Equal(t, gotReqID, reqID)
	assert.NotEmpty(t, reqID)
	require.Len(t, items, 1)
	assert.Equal(t, domain.Item{ID: 1, Name: "phone", Brand: "Acme", Price: 199.9}, items[0])
}

func TestSearchEmptyArrayIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	items, err := c.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSearchNullBodyYieldsEmptySlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	items, err := c.Search(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, items)
}

func TestSearchDecodesGzip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_, _ = zw.Write([]byte(`[{"id":7,"name":"headphones"}]`))
		_ = zw.Close()
	})
	items, err := c.Search(context.Background(), "head")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "headphones", items[0].Name)
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		status    int
		transient bool
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			status:    http.StatusInternalServerError,
			transient: true,
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"an array"`))
			},
			status:    http.StatusOK,
			transient: false,
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			status:    http.StatusBadRequest,
			transient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.Search(context.Background(), "q")
			require.Error(t, err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "search", fe.Op)
			assert.Equal(t, tt.status, fe.StatusCode)
			assert.NotEmpty(t, RequestIDFrom(err))
			if tt.status >= 500 {
				assert.True(t, fe.Transient())
			} else if tt.status == http.StatusBadRequest {
				assert.Equal(t, tt.transient, fe.Transient())
			}
		})
	}
}

func TestSearchNetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "q")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, fe.StatusCode)
	assert.True(t, fe.Transient())
}

func TestSearchTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(20*time.Millisecond))
	defer close(release)

	_, err := c.Search(context.Background(), "slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/3":
			_, _ = w.Write([]byte(`{"id":3,"name":"speaker","wireless":true,"rating":4.5}`))
		default:
			http.NotFound(w, r)
		}
	})

	item, err := c.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "speaker", item.Name)
	assert.True(t, item.Wireless)
	assert.Equal(t, 4.5, item.Rating)

	_, err = c.Get(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImageURL(t *testing.T) {
	c, err := New("http://localhost:3333/")
	require.NoError(t, err)

	assert.Equal(t, "", c.ImageURL(domain.Item{}))
	assert.Equal(t, "http://localhost:3333/products/images/a%20b.png", c.ImageURL(domain.Item{Image: "images/a b.png"}))
	assert.Equal(t, "https://cdn.example.com/x.png", c.ImageURL(domain.Item{Image: "https://cdn.example.com/x.png"}))
}

func TestNewRejectsBadScheme(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)
}
