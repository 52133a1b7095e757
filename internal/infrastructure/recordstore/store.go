package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Store is the key-addressed document database. Writes are last-writer-wins
// and carry no transactional guarantee with the identity provider.
type Store interface {
	Write(ctx context.Context, path string, record any) error
}

type httpStore struct {
	baseURL string
	secret  string
	client  *http.Client
}

// NewHTTPStore returns a Store backed by the document database's REST
// surface: PUT {base}/{path}.json replaces the document at that path.
func NewHTTPStore(baseURL, secret string, client *http.Client) Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpStore{baseURL: baseURL, secret: secret, client: client}
}

func (s *httpStore) Write(ctx context.Context, path string, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	target := s.baseURL + "/" + path + ".json"
	if s.secret != "" {
		target += "?auth=" + url.QueryEscape(s.secret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("record write to %s failed with status %d", path, resp.StatusCode)
	}
	return nil
}
