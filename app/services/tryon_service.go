package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pehnava/pehnava/pkg/storage"
	"github.com/pehnava/pehnava/pkg/workerpool"
)

// ErrSynthesisBusy is returned when all synthesis workers are occupied.
// Callers should surface it as a retry-later condition.
var ErrSynthesisBusy = errors.New("try-on synthesis at capacity")

// ErrSynthesisDisabled is returned when no synthesis endpoint is
// configured (TRYON_ENDPOINT unset).
var ErrSynthesisDisabled = errors.New("try-on synthesis is not configured")

// TryOnService drives the virtual try-on image synthesis: a shopper's
// photo plus a garment image goes to the external synthesis endpoint,
// and the rendered result is stored and served from our storage disk.
//
// Calls to the external service are expensive (tens of seconds), so a
// bounded worker pool caps how many run at once.
type TryOnService struct {
	products ProductStore
	pool     *workerpool.Pool
	client   *http.Client
	endpoint string
}

func NewTryOnService(products ProductStore, endpoint string, workers int) *TryOnService {
	return &TryOnService{
		products: products,
		pool:     workerpool.New(workers),
		client:   &http.Client{Timeout: 120 * time.Second},
		endpoint: endpoint,
	}
}

// Shutdown waits for in-flight synthesis calls to finish.
func (s *TryOnService) Shutdown() { s.pool.Shutdown() }

// Synthesize renders the shopper's photo wearing the given product and
// returns a public URL for the result. Returns ErrSynthesisBusy when
// the worker pool is saturated and ErrNotFound when the product does
// not exist.
func (s *TryOnService) Synthesize(ctx context.Context, personImage []byte, productID primitive.ObjectID) (string, error) {
	if s.endpoint == "" {
		return "", ErrSynthesisDisabled
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return "", err
	}

	type result struct {
		url string
		err error
	}
	done := make(chan result, 1)

	err = s.pool.Submit(func() {
		url, err := s.render(ctx, personImage, product.Image, productID)
		done <- result{url: url, err: err}
	})
	if err != nil {
		return "", ErrSynthesisBusy
	}

	select {
	case res := <-done:
		return res.url, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// render performs the blocking call to the synthesis endpoint and stores
// the rendered image.
func (s *TryOnService) render(ctx context.Context, personImage []byte, garmentURL string, productID primitive.ObjectID) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("person", "person.png")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(personImage); err != nil {
		return "", err
	}
	if err := mw.WriteField("garment_url", garmentURL); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("synthesis endpoint returned %d", resp.StatusCode)
	}

	rendered, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("tryons/%s-%d.png", productID.Hex(), time.Now().UnixNano())
	if err := storage.Put(path, rendered); err != nil {
		return "", err
	}
	return storage.URL(path), nil
}
