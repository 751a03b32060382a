package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPFSStore_PutGet_ok(t *testing.T) {
	payload := []byte(`{"iv":"...","ciphertext":"...","tag":"..."}`)
	contentID := "bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		switch r.URL.Path {
		case "/api/v0/add":
			_, err := io.ReadAll(r.Body)
			assert.Nil(t, err)
			_, err = w.Write([]byte(`{"Name":"envelope","Hash":"` + contentID + `"}`))
			assert.Nil(t, err)
		case "/api/v0/cat":
			assert.Equal(t, contentID, r.URL.Query().Get("arg"))
			_, err := w.Write(payload)
			assert.Nil(t, err)
		case "/api/v0/id":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := NewIPFS(srv.URL, DefaultPutTimeout)
	assert.True(t, s.IsAvailable(context.Background()))

	stored, err := s.Put(context.Background(), payload)
	assert.Nil(t, err)
	assert.Equal(t, contentID, stored)

	fetched, err := s.Get(context.Background(), contentID)
	assert.Nil(t, err)
	assert.Equal(t, payload, fetched)
}

func TestIPFSStore_Put_retries(t *testing.T) {
	nAttempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nAttempts++
		if nAttempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, err := w.Write([]byte(`{"Hash":"QmTest"}`))
		assert.Nil(t, err)
	}))
	defer srv.Close()

	s := NewIPFS(srv.URL, DefaultPutTimeout)
	contentID, err := s.Put(context.Background(), []byte("envelope"))
	assert.Nil(t, err)
	assert.Equal(t, "QmTest", contentID)
	assert.Equal(t, 3, nAttempts)
}

func TestIPFSStore_Put_err(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewIPFS(srv.URL, 100*time.Millisecond)
	contentID, err := s.Put(context.Background(), []byte("envelope"))
	assert.NotNil(t, err)
	assert.Empty(t, contentID)
}

func TestIPFSStore_Get_err(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewIPFS(srv.URL, DefaultPutTimeout)
	payload, err := s.Get(context.Background(), "QmTest")
	assert.Equal(t, ErrContentNotFound, err)
	assert.Nil(t, payload)
}

func TestIPFSStore_IsAvailable_unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := NewIPFS(srv.URL, DefaultPutTimeout)
	assert.False(t, s.IsAvailable(context.Background()))
}
