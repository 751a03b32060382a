package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	cbackoff "github.com/cenkalti/backoff"
	"github.com/pkg/errors"
)

const (
	// DefaultIPFSAPIAddr is the API address of a local IPFS daemon.
	DefaultIPFSAPIAddr = "http://localhost:5001"

	// DefaultPutTimeout is the default bound on Put retries against an IPFS node.
	DefaultPutTimeout = 10 * time.Second

	defaultExpBackoffInitialInterval     = 100 * time.Millisecond
	defaultExpBackoffRandomizationFactor = 0.25
	defaultExpBackoffMultiplier          = 1.414
	defaultExpBackoffMaxInterval         = 2 * time.Second
)

// ipfsStore is a Store backed by the HTTP API of an IPFS node. Puts are retried with
// exponential backoff up to the configured timeout; gets and the availability probe are
// single attempts.
type ipfsStore struct {
	apiAddr    string
	client     *http.Client
	putTimeout time.Duration
}

// NewIPFS creates a Store backed by the IPFS node API at the given address.
func NewIPFS(apiAddr string, putTimeout time.Duration) Store {
	return &ipfsStore{
		apiAddr:    strings.TrimRight(apiAddr, "/"),
		client:     &http.Client{},
		putTimeout: putTimeout,
	}
}

func (s *ipfsStore) Put(ctx context.Context, payload []byte) (string, error) {
	var id string
	operation := func() error {
		var err error
		id, err = s.add(ctx, payload)
		return err
	}
	if err := cbackoff.Retry(operation, newExpBackoff(s.putTimeout)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *ipfsStore) Get(ctx context.Context, contentID string) ([]byte, error) {
	resp, err := s.post(ctx, "/api/v0/cat?arg="+contentID, nil, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusInternalServerError {
		return nil, ErrContentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected IPFS cat response status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *ipfsStore) IsAvailable(ctx context.Context) bool {
	resp, err := s.post(ctx, "/api/v0/id", nil, "")
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

func (s *ipfsStore) add(ctx context.Context, payload []byte) (string, error) {
	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", "envelope")
	if err != nil {
		return "", err
	}
	if _, err = part.Write(payload); err != nil {
		return "", err
	}
	if err = form.Close(); err != nil {
		return "", err
	}
	resp, err := s.post(ctx, "/api/v0/add?pin=true", body, form.FormDataContentType())
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected IPFS add response status %d", resp.StatusCode)
	}
	added := &struct {
		Hash string `json:"Hash"`
	}{}
	if err = json.NewDecoder(resp.Body).Decode(added); err != nil {
		return "", err
	}
	if added.Hash == "" {
		return "", errors.New("IPFS add response missing content hash")
	}
	return added.Hash, nil
}

func (s *ipfsStore) post(
	ctx context.Context, path string, body io.Reader, contentType string,
) (*http.Response, error) {
	// the IPFS RPC API accepts POST only
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiAddr+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return s.client.Do(req)
}

func newExpBackoff(timeout time.Duration) *cbackoff.ExponentialBackOff {
	b := &cbackoff.ExponentialBackOff{
		InitialInterval:     defaultExpBackoffInitialInterval,
		RandomizationFactor: defaultExpBackoffRandomizationFactor,
		Multiplier:          defaultExpBackoffMultiplier,
		MaxInterval:         defaultExpBackoffMaxInterval,
		MaxElapsedTime:      timeout,
		Clock:               cbackoff.SystemClock,
	}
	b.Reset()
	return b
}
