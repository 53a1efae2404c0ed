package preprocess_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kakeibo/internal/preprocess"
)

func TestProcessCropsImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crop", r.URL.Path)
		_, _ = w.Write([]byte("cropped-bytes"))
	}))
	defer srv.Close()

	c := preprocess.New(srv.URL, 5*time.Second)
	out := c.Process(context.Background(), []byte("original"))
	assert.Equal(t, []byte("cropped-bytes"), out)
}

func TestProcessFailureReturnsOriginal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad image", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := preprocess.New(srv.URL, 5*time.Second)
	out := c.Process(context.Background(), []byte("original"))
	assert.Equal(t, []byte("original"), out)
}

func TestProcessUnreachableReturnsOriginal(t *testing.T) {
	c := preprocess.New("http://127.0.0.1:1", time.Second)
	out := c.Process(context.Background(), []byte("original"))
	assert.Equal(t, []byte("original"), out)
}

func TestNilClientPassesThrough(t *testing.T) {
	c := preprocess.New("", 0)
	assert.Nil(t, c)
	out := c.Process(context.Background(), []byte("original"))
	assert.Equal(t, []byte("original"), out)
}
