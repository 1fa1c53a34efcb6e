package breedapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/adotefacil/service-adoption/internal/domain/animal"
	"github.com/adotefacil/service-adoption/pkg/domain"
)

const (
	// DogBreedsURL is the catalog endpoint of TheDogApi.
	DogBreedsURL = "https://api.thedogapi.com/v1/breeds"
	// CatBreedsURL is the catalog endpoint of TheCatApi.
	CatBreedsURL = "https://api.thecatapi.com/v1/breeds"

	apiKeyHeader   = "x-api-key"
	defaultTimeout = 10 * time.Second
)

// Config holds the settings for a breed catalog client.
type Config struct {
	Name    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client fetches a third-party breed catalog and exposes it as an
// animal.Source. Every query fetches the full catalog and filters in memory.
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client from the given configuration.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		name:    cfg.Name,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewDog creates a client for TheDogApi.
func NewDog(apiKey string) *Client {
	return New(Config{Name: "dog", BaseURL: DogBreedsURL, APIKey: apiKey})
}

// NewCat creates a client for TheCatApi.
func NewCat(apiKey string) *Client {
	return New(Config{Name: "cat", BaseURL: CatBreedsURL, APIKey: apiKey})
}

// Name identifies the source in logs and errors.
func (c *Client) Name() string { return c.name }

// breedRecord is the loosely-shaped third-party catalog entry. Records are
// normalized into the Animal shape before leaving this package; a record that
// cannot be normalized fails the whole fetch.
type breedRecord struct {
	ID           json.RawMessage `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        json.RawMessage `json:"image"`
	Category     string          `json:"category"`
	CreationDate string          `json:"creationDate"`
	Status       string          `json:"status"`
}

// FetchAll retrieves and normalizes the full catalog.
func (c *Client) FetchAll(ctx context.Context) ([]*animal.Animal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, domain.NewRetrievalError(c.name+" catalog request failed", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewRetrievalError(c.name+" catalog unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewRetrievalError(
			fmt.Sprintf("%s catalog returned status %d", c.name, resp.StatusCode), nil)
	}

	var records []breedRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, domain.NewRetrievalError(c.name+" catalog returned invalid JSON", err)
	}

	animals := make([]*animal.Animal, 0, len(records))
	for i, rec := range records {
		a, err := c.toAnimal(rec)
		if err != nil {
			return nil, domain.NewRetrievalError(
				fmt.Sprintf("%s catalog record %d is malformed", c.name, i), err)
		}
		animals = append(animals, a)
	}
	return animals, nil
}

// toAnimal normalizes one catalog record into the Animal shape.
func (c *Client) toAnimal(rec breedRecord) (*animal.Animal, error) {
	if rec.Name == "" {
		return nil, fmt.Errorf("missing name")
	}

	id, err := decodeID(rec.ID)
	if err != nil {
		return nil, err
	}

	image, err := decodeImage(rec.Image)
	if err != nil {
		return nil, err
	}

	status := animal.StatusAvailable
	if rec.Status != "" {
		status, err = animal.ParseStatus(rec.Status)
		if err != nil {
			return nil, err
		}
	}

	var creationDate time.Time
	if rec.CreationDate != "" {
		creationDate, err = time.Parse(time.RFC3339, rec.CreationDate)
		if err != nil {
			return nil, fmt.Errorf("invalid creation date %q: %w", rec.CreationDate, err)
		}
	}

	return animal.Reconstruct(id, rec.Name, rec.Description, image, rec.Category, creationDate, status, 0), nil
}

// decodeID accepts the string IDs of TheCatApi and the numeric IDs of
// TheDogApi, normalizing both to an opaque string.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("empty id")
		}
		return s, nil
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	return "", fmt.Errorf("unsupported id shape: %s", string(raw))
}

// decodeImage accepts either a bare URL string or an image object carrying a
// url field.
func decodeImage(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.URL, nil
	}
	return "", fmt.Errorf("unsupported image shape: %s", string(raw))
}
